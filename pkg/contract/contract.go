package contract

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Operation identifiers declared by the embedded document.
const (
	CreateCustomer = "createCustomer"
	ListCustomers  = "listCustomers"
)

//go:embed customers.yaml
var customersYAML []byte

var (
	// ErrOperationNotFound is returned for an unknown operationId.
	ErrOperationNotFound = errors.New("contract: operation not found")
	// ErrNoRequestBody is returned when an operation declares no JSON body.
	ErrNoRequestBody = errors.New("contract: operation has no JSON request body")
)

// Operation describes one endpoint of the document.
type Operation struct {
	ID        string
	Method    string
	Path      string
	Summary   string
	Responses []string

	request *openapi3.Schema
}

// HasRequestBody reports whether the operation accepts a JSON body.
func (o Operation) HasRequestBody() bool {
	return o.request != nil
}

// Document is a loaded and validated contract.
type Document struct {
	spec       *openapi3.T
	raw        []byte
	operations map[string]Operation
}

// Load parses the embedded customer contract.
func Load(ctx context.Context) (*Document, error) {
	return LoadFromData(ctx, customersYAML)
}

// LoadFromData parses and validates an OpenAPI 3 document.
func LoadFromData(ctx context.Context, raw []byte) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("contract: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate: %w", err)
	}

	doc := &Document{
		spec:       spec,
		raw:        append([]byte(nil), raw...),
		operations: make(map[string]Operation),
	}
	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for method, op := range item.Operations() {
				doc.collect(method, path, op)
			}
		}
	}
	if len(doc.operations) == 0 {
		return nil, errors.New("contract: no operations declared")
	}
	return doc, nil
}

func (d *Document) collect(method, path string, op *openapi3.Operation) {
	if op == nil {
		return
	}
	id := op.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	out := Operation{
		ID:      id,
		Method:  strings.ToUpper(method),
		Path:    path,
		Summary: op.Summary,
		request: requestSchema(op.RequestBody),
	}
	if op.Responses != nil {
		for status := range op.Responses.Map() {
			out.Responses = append(out.Responses, status)
		}
		sort.Strings(out.Responses)
	}
	d.operations[id] = out
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	mt := body.Value.Content.Get("application/json")
	if mt == nil || mt.Schema == nil {
		return nil
	}
	return mt.Schema.Value
}

// Raw returns a copy of the document source as it was loaded.
func (d *Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Title returns the document title.
func (d *Document) Title() string {
	if d.spec.Info == nil {
		return ""
	}
	return d.spec.Info.Title
}

// Operation looks up an operation by id.
func (d *Document) Operation(id string) (Operation, error) {
	op, ok := d.operations[id]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %q", ErrOperationNotFound, id)
	}
	return op, nil
}

// Operations lists the declared operation ids in sorted order.
func (d *Document) Operations() []string {
	ids := make([]string, 0, len(d.operations))
	for id := range d.operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Issue is one schema violation. Field is the dotted path of the offending
// value; it is empty for violations of the document root.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationError lists every violation found in a request body.
type ValidationError struct {
	Operation string
	Issues    []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Field == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, issue.Field+": "+issue.Message)
	}
	return fmt.Sprintf("contract: %s request invalid: %s", e.Operation, strings.Join(parts, "; "))
}

// ValidateRequest checks raw JSON against the request body schema of the
// operation. Malformed JSON and schema violations both yield a
// *ValidationError.
func (d *Document) ValidateRequest(operationID string, raw []byte) error {
	op, err := d.Operation(operationID)
	if err != nil {
		return err
	}
	if op.request == nil {
		return fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return &ValidationError{
			Operation: operationID,
			Issues:    []Issue{{Message: "body is not valid JSON"}},
		}
	}

	if err := op.request.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return &ValidationError{Operation: operationID, Issues: issuesFrom(err)}
	}
	return nil
}

func issuesFrom(err error) []Issue {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []Issue
		for _, item := range multi {
			out = append(out, issuesFrom(item)...)
		}
		return out
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		return []Issue{{
			Field:   strings.Join(schemaErr.JSONPointer(), "."),
			Message: schemaErr.Reason,
		}}
	}
	return []Issue{{Message: err.Error()}}
}

// ValidateRequestBody validates raw against the createCustomer request schema.
func (d *Document) ValidateRequestBody(raw []byte) error {
	return d.ValidateRequest(CreateCustomer, raw)
}
