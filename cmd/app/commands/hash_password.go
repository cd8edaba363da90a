package commands

import (
	"bufio"
	"fmt"
	"strings"

	validation "github.com/jellydator/validation"

	authService "github.com/paylink/terminal/internal/auth/service"
	customValidation "github.com/paylink/terminal/internal/validation"
)

// terminalPasswordStrength is the minimum accepted for a new terminal password.
var terminalPasswordStrength = customValidation.PasswordStrength{
	MinLength:     12,
	RequireUpper:  true,
	RequireLower:  true,
	RequireNumber: true,
}

// RunHashPassword prints the TERMINAL_PASSWORD_HASH line for password. An empty
// password is read from the first line of streams.Reader so it stays out of the
// shell history.
func RunHashPassword(hasher authService.PasswordHasher, streams IOTuple, password string) error {
	if password == "" {
		scanner := bufio.NewScanner(streams.Reader)
		if scanner.Scan() {
			password = strings.TrimRight(scanner.Text(), "\r")
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	if err := validation.Validate(password, validation.Required, terminalPasswordStrength); err != nil {
		return customValidation.WrapValidationError(err)
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	// Single quotes keep dotenv from expanding the "$" separators of the PHC string.
	_, _ = fmt.Fprintf(streams.Writer, "TERMINAL_PASSWORD_HASH='%s'\n", hash)
	return nil
}
