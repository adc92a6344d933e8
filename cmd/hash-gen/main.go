package main

import (
	"fmt"
	"log"
	"os"

	"nafs-registration.backend/pkg/crypto"
)

var (
	printfFn       = fmt.Printf
	generateHashFn = generateHash
	fatalfFn       = log.Fatalf
)

// resolvePassword takes the password from argv, or generates a random
// temporary one when none is given.
func resolvePassword(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	password, err := crypto.GenerateTempPassword()
	if err != nil {
		fatalfFn("Failed to generate password: %v", err)
	}
	return password
}

func generateHash(password string) (string, error) {
	return crypto.HashPassword(password)
}

func main() {
	password := resolvePassword(os.Args[1:])

	printfFn("Generating hash for password: %s\n", password)

	hash, err := generateHashFn(password)
	if err != nil {
		fatalfFn("Failed to hash password: %v", err)
	}

	printfFn("Bcrypt Hash: %s\n", hash)
}
