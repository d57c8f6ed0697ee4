package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

const (
	codeMarkdownMissing = "MARKDOWN_MISSING"

	// undefinedLiteral is what some clients send after serializing an
	// undefined value into JSON. It is treated as missing input.
	undefinedLiteral = "undefined"
)

// markdownRequest is the decoded body of POST /api/markdown. Markdown holds
// whatever JSON value the client sent; only non-empty strings render.
type markdownRequest struct {
	Markdown any `json:"markdown"`
}

// Validate rejects a markdown value that is absent, null, falsy ("", false,
// 0) or the literal string "undefined". Any other value, including a
// whitespace-only string, passes.
func (req markdownRequest) Validate() error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Markdown,
			validation.By(present),
			validation.NotIn(undefinedLiteral).ErrorObject(
				validation.NewError("mdsafe.markdown.undefined", msgNoMarkdown),
			),
		),
	)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "markdown content missing").
			WithTextCode(codeMarkdownMissing)
	}
	return nil
}

func present(value any) error {
	missing := validation.NewError("mdsafe.markdown.required", msgNoMarkdown)
	switch v := value.(type) {
	case nil:
		return missing
	case string:
		if v == "" {
			return missing
		}
	case bool:
		if !v {
			return missing
		}
	case float64:
		if v == 0 {
			return missing
		}
	}
	return nil
}

// decodeRequest reads a JSON body. Bodies that are not declared as JSON, and
// empty bodies, decode to an empty request. Malformed or oversized bodies
// return an error.
func decodeRequest(w http.ResponseWriter, r *http.Request, limit int64) (markdownRequest, error) {
	var req markdownRequest
	if r.Body == nil || !isJSON(r.Header.Get("Content-Type")) {
		return req, nil
	}

	body := http.MaxBytesReader(w, r.Body, limit)
	defer body.Close()

	dec := json.NewDecoder(body)
	var payload any
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return req, nil
		}
		return req, fmt.Errorf("decoding request body: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after JSON value")
		}
		return req, fmt.Errorf("decoding request body: %w", err)
	}

	switch v := payload.(type) {
	case map[string]any:
		req.Markdown = v["markdown"]
	case []any:
		// Arrays carry no fields.
	default:
		return req, fmt.Errorf("decoding request body: expected an object, got %T", payload)
	}
	return req, nil
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
