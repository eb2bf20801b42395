package hasher

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
)

// HashAlgorithms is a list of supported checksum algorithms.
var HashAlgorithms = []string{"sha256", "sha512"}

// IsValidHashAlgo checks if the provided algorithm string is supported.
func IsValidHashAlgo(algo string) bool {
	for _, validAlgo := range HashAlgorithms {
		if strings.ToLower(algo) == validAlgo {
			return true
		}
	}
	return false
}

// GenerateHashFromReader calculates the checksum of a stream using the
// specified algorithm.
func GenerateHashFromReader(r io.Reader, algo string) (string, error) {
	var h hash.Hash
	switch strings.ToLower(algo) {
	case "sha256":
		h = sha256.New()
	case "sha512":
		h = sha512.New()
	default:
		return "", fmt.Errorf("unsupported hash algorithm: %s", algo)
	}

	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// GenerateHash calculates the checksum of a file using the specified algorithm.
func GenerateHash(filePath, algo string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	return GenerateHashFromReader(file, algo)
}
