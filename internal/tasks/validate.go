package tasks

import "strings"

// Validate checks the two required fields. It has no side effects.
func Validate(req GenerateTasksRequest) error {
	if strings.TrimSpace(req.Goal) == "" {
		return &ValidationError{Message: "Goal is required"}
	}
	if strings.TrimSpace(req.Users) == "" {
		return &ValidationError{Message: "Users are required"}
	}
	return nil
}
