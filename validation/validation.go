// Package validation provides structural and content validation plus
// sanitization for everything that crosses the service boundary: the
// conversation, the user identifier and the pod (tenant scope) identifier.
//
// Validation failures abort a request immediately with a typed error. They
// are never retried and never silently corrected.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/revoshq/holygrail/core"
)

// Bounds enforced on inbound conversations and identifiers.
const (
	// MaxMessages caps the number of messages in a conversation history.
	MaxMessages = 100
	// MaxMessageLength caps a single message's content, in characters.
	MaxMessageLength = 10000
	// MaxIdentifierLength caps user and pod identifiers.
	MaxIdentifierLength = 255
)

// identifierPattern restricts identifiers to a character class that cannot be
// used as an injection vector once composed into the memory scope key and
// interpolated into downstream query strings.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_:.-]+$`)

// controlCharPattern matches control characters except newline, tab and
// carriage return.
var controlCharPattern = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)

// Error is the typed validation failure surfaced to callers before any
// external call is made.
type Error struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidateConversation checks the conversation's structure and content.
// It returns (false, reason) naming the violated bound on failure.
func ValidateConversation(conversation core.Conversation) (bool, string) {
	if len(conversation) == 0 {
		return false, "messages list cannot be empty"
	}
	if len(conversation) > MaxMessages {
		return false, fmt.Sprintf("too many messages (max %d, got %d)", MaxMessages, len(conversation))
	}
	for i, msg := range conversation {
		switch msg.Role {
		case core.RoleUser, core.RoleAssistant, core.RoleSystem:
		case "":
			return false, fmt.Sprintf("message at index %d missing 'role' field", i)
		default:
			return false, fmt.Sprintf("invalid role '%s' at index %d", msg.Role, i)
		}
		if n := len([]rune(msg.Content)); n > MaxMessageLength {
			return false, fmt.Sprintf("message at index %d too long (max %d, got %d)", i, MaxMessageLength, n)
		}
	}
	return true, ""
}

// ValidateUserID checks the user identifier's length and character class.
func ValidateUserID(userID string) (bool, string) {
	return validateIdentifier("user_id", userID)
}

// ValidatePodID checks the pod identifier's length and character class.
func ValidatePodID(podID string) (bool, string) {
	return validateIdentifier("pod_id", podID)
}

func validateIdentifier(field, id string) (bool, string) {
	if id == "" {
		return false, fmt.Sprintf("%s cannot be empty", field)
	}
	if len(id) > MaxIdentifierLength {
		return false, fmt.Sprintf("%s too long (max %d characters)", field, MaxIdentifierLength)
	}
	if !identifierPattern.MatchString(id) {
		return false, fmt.Sprintf("%s contains invalid characters", field)
	}
	return true, ""
}

// Sanitize strips control characters (keeping newline, tab and carriage
// return) and trims surrounding whitespace. Applied to the selected user
// message before it reaches the agent or the fallback path.
func Sanitize(content string) string {
	if content == "" {
		return ""
	}
	return strings.TrimSpace(controlCharPattern.ReplaceAllString(content, ""))
}
