package clierr

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *Error
		wantMsg string
	}{
		{
			name:    "simple error message",
			err:     New(Validation, "invalid input", nil),
			wantMsg: "invalid input",
		},
		{
			name:    "error with underlying error",
			err:     New(Export, "export failed", errors.New("disk full")),
			wantMsg: "export failed",
		},
		{
			name:    "empty message",
			err:     New(Internal, "", nil),
			wantMsg: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", got, tt.wantMsg)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	tests := []struct {
		name    string
		err     *Error
		wantNil bool
	}{
		{
			name:    "no underlying error",
			err:     New(Validation, "test", nil),
			wantNil: true,
		},
		{
			name:    "with underlying error",
			err:     New(Auth, "test", errors.New("underlying")),
			wantNil: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Unwrap()
			if (got == nil) != tt.wantNil {
				t.Errorf("Unwrap() nil = %v, want nil = %v", got == nil, tt.wantNil)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		errorType   Type
		message     string
		underlying  error
		wantType    Type
		wantMessage string
		wantErr     bool
	}{
		{
			name:        "validation error",
			errorType:   Validation,
			message:     "invalid account ID",
			underlying:  nil,
			wantType:    Validation,
			wantMessage: "invalid account ID",
			wantErr:     false,
		},
		{
			name:        "not found error",
			errorType:   NotFound,
			message:     "payment not found",
			underlying:  errors.New("sql: no rows"),
			wantType:    NotFound,
			wantMessage: "payment not found",
			wantErr:     true,
		},
		{
			name:        "auth error",
			errorType:   Auth,
			message:     "session expired",
			underlying:  errors.New("refresh rejected"),
			wantType:    Auth,
			wantMessage: "session expired",
			wantErr:     true,
		},
		{
			name:        "export error",
			errorType:   Export,
			message:     "failed to write statement file",
			underlying:  errors.New("permission denied"),
			wantType:    Export,
			wantMessage: "failed to write statement file",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.errorType, tt.message, tt.underlying)

			if got.Type != tt.wantType {
				t.Errorf("New().Type = %v, want %v", got.Type, tt.wantType)
			}

			if got.Message != tt.wantMessage {
				t.Errorf("New().Message = %v, want %v", got.Message, tt.wantMessage)
			}

			if (got.Err != nil) != tt.wantErr {
				t.Errorf("New().Err nil = %v, want nil = %v", got.Err == nil, !tt.wantErr)
			}
		})
	}
}

func TestError_ErrorsIsAs(t *testing.T) {
	underlyingErr := errors.New("underlying error")
	cliErr := New(Export, "export failed", underlyingErr)

	if !errors.Is(cliErr, underlyingErr) {
		t.Error("errors.Is should find underlying error")
	}

	var cliErrTarget *Error
	if !errors.As(cliErr, &cliErrTarget) {
		t.Error("errors.As should find Error type")
	}

	if cliErrTarget.Type != Export {
		t.Errorf("errors.As Type = %v, want %v", cliErrTarget.Type, Export)
	}
}

func TestError_Types(t *testing.T) {
	types := []Type{Validation, NotFound, Auth, Export, Internal}
	expected := []string{"validation", "not_found", "auth", "export", "internal"}

	for i, typ := range types {
		if string(typ) != expected[i] {
			t.Errorf("Type constant = %v, want %v", typ, expected[i])
		}
	}
}

func TestError_ErrorInterface(t *testing.T) {
	var _ error = (*Error)(nil)

	err := New(Validation, "test message", nil)
	var e error = err

	if e.Error() != "test message" {
		t.Errorf("Error interface Error() = %v, want %v", e.Error(), "test message")
	}
}
