package schema

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/sr"
)

var _ SchemaIdentifier = SchemaCreater{}

type schemaCreator interface {
	CreateSchema(ctx context.Context, subject string, s sr.Schema) (sr.SubjectSchema, error)
}

// SchemaCreater registers Avro schemas in the schema registry. Registering
// an already known schema returns its existing id.
type SchemaCreater struct {
	cl schemaCreator
}

func NewSchemaCreater(cl schemaCreator) SchemaCreater {
	return SchemaCreater{cl}
}

// NewRegistryClient returns a schema registry client for urls.
func NewRegistryClient(urls []string) (*sr.Client, error) {
	const op = "NewRegistryClient"
	cl, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cl, nil
}

func (c SchemaCreater) DetermineID(
	ctx context.Context, subject, schemaText string,
) (int, error) {
	const op = "SchemaCreater.DetermineID"

	ss, err := c.cl.CreateSchema(ctx, subject, sr.Schema{
		Schema: schemaText,
		Type:   sr.TypeAvro,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: subject %q: %w", op, subject, err)
	}
	return ss.ID, nil
}
