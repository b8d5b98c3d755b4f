package client

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"bank-mediator/pkg/bank"
)

// errorPayload is the error body understood from the backend. The standard
// Spring error body puts the HTTP reason phrase in "error"; application
// handlers may put a machine code there or in "code" instead.
type errorPayload struct {
	Message          string          `json:"message"`
	Error            string          `json:"error"`
	Code             string          `json:"code"`
	ValidationErrors json.RawMessage `json:"validationErrors"`
}

var codePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]+$`)

// code returns the structured error code, if the payload carries one.
func (p errorPayload) code() string {
	if p.Code != "" {
		return strings.ToUpper(strings.TrimSpace(p.Code))
	}
	if codePattern.MatchString(p.Error) {
		return p.Error
	}
	return ""
}

// validationField returns the first field named in validationErrors, or ""
// when the payload has none. ok reports whether validation errors are present.
func (p errorPayload) validationField() (field string, ok bool) {
	raw := strings.TrimSpace(string(p.ValidationErrors))
	if raw == "" || raw == "null" || raw == "{}" || raw == "[]" {
		return "", false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(p.ValidationErrors, &fields); err == nil {
		if len(fields) == 0 {
			return "", false
		}
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		return names[0], true
	}
	return "", true
}

func decodePayload(data []byte) errorPayload {
	var p errorPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return errorPayload{}
	}
	p.Message = strings.TrimSpace(p.Message)
	return p
}

var (
	insufficientFundsCodes = map[string]bool{
		"INSUFFICIENT_FUNDS": true,
	}
	invalidStateCodes = map[string]bool{
		"ACCOUNT_CLOSED":    true,
		"ACCOUNT_INACTIVE":  true,
		"ACCOUNT_SUSPENDED": true,
	}
	notFoundCodes = map[string]bool{
		"ACCOUNT_NOT_FOUND":  true,
		"CUSTOMER_NOT_FOUND": true,
	}
	insufficientFundsPhrases = []string{"insufficient", "balance too low", "not enough funds"}
)

// classifyResponse maps a non-2xx response to a *bank.Error.
func classifyResponse(req request, status int, data []byte) *bank.Error {
	p := decodePayload(data)
	e := &bank.Error{
		Op:     req.op,
		Entity: req.entity,
		ID:     req.id,
		Status: status,
		Code:   p.code(),
	}

	switch {
	case status == 404:
		e.Kind = bank.KindNotFound
		e.Message = notFoundMessage(req)
	case status == 409:
		e.Kind = bank.KindConflict
		e.Message = p.Message
		if e.Message == "" {
			e.Message = entityName(req) + " already exists"
		}
	case status == 400:
		e.Kind, e.Field = classifyBadRequest(p, e.Code)
		e.Message = badRequestMessage(p, e.Code)
	case status >= 500:
		e.Kind = bank.KindServer
		e.Message = "Server error. Please try again later."
	default:
		e.Kind = bank.KindUnexpected
		e.Message = p.Message
		if e.Message == "" {
			e.Message = "An unexpected error occurred"
		}
	}
	if p.Message != "" && e.Message != p.Message {
		e.Err = fmt.Errorf("server: %s", p.Message)
	}
	return e
}

// classifyBadRequest splits 400 responses. A structured code wins; then the
// message is matched against known phrases; a validationErrors object means
// the server rejected the input; anything else is a state precondition.
func classifyBadRequest(p errorPayload, code string) (bank.Kind, string) {
	switch {
	case insufficientFundsCodes[code]:
		return bank.KindInsufficientFunds, ""
	case invalidStateCodes[code]:
		return bank.KindInvalidState, ""
	case notFoundCodes[code]:
		return bank.KindNotFound, ""
	}

	msg := strings.ToLower(p.Message)
	for _, phrase := range insufficientFundsPhrases {
		if strings.Contains(msg, phrase) {
			return bank.KindInsufficientFunds, ""
		}
	}
	if strings.Contains(msg, "not found") {
		return bank.KindNotFound, ""
	}

	if field, ok := p.validationField(); ok {
		return bank.KindValidation, field
	}
	return bank.KindInvalidState, ""
}

func badRequestMessage(p errorPayload, code string) string {
	if p.Message != "" {
		return p.Message
	}
	if friendly, ok := bank.FriendlyMessage(code); ok {
		return friendly
	}
	return "Invalid request data"
}

func notFoundMessage(req request) string {
	switch {
	case req.entity != "" && req.id != "":
		return fmt.Sprintf("%s %s not found", req.entity, req.id)
	case req.entity != "":
		return req.entity + " not found"
	default:
		return "Resource not found"
	}
}

func entityName(req request) string {
	if req.entity == "" {
		return "Resource"
	}
	return req.entity
}
