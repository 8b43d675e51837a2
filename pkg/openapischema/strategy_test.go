package openapischema_test

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalid/pkg/form"
	"github.com/goliatone/go-formvalid/pkg/openapischema"
	"github.com/goliatone/go-formvalid/pkg/validate"
)

func articleSchema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.WithProperty("title", openapi3.NewStringSchema().WithMinLength(3))
	schema.WithProperty("age", openapi3.NewIntegerSchema().WithMin(18))
	schema.WithProperty("status", openapi3.NewStringSchema().WithEnum("draft", "published"))
	schema.Required = []string{"title"}
	return schema
}

func articleItems() []form.Item {
	return []form.Item{
		form.Field{Name: "title", Type: form.FieldTypeString},
		form.Field{Name: "age", Type: form.FieldTypeInteger},
		form.Field{Name: "status", Type: form.FieldTypeString},
	}
}

func TestStrategy_RequiredFromSchema(t *testing.T) {
	strategy := openapischema.New(articleSchema())

	out, err := strategy.Validate(&form.Form{Items: articleItems()})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	want := form.Errors{"title": {"can't be blank"}}
	if diff := cmp.Diff(want, out.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestStrategy_SchemaViolations(t *testing.T) {
	strategy := openapischema.New(articleSchema())

	out, err := strategy.Validate(&form.Form{
		Items: articleItems(),
		Values: map[string]any{
			"title":  "ok title",
			"age":    16,
			"status": "deleted",
		},
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	// Exact reasons belong to kin-openapi; assert which fields failed.
	if len(out.Errors["age"]) == 0 {
		t.Fatalf("expected age below the minimum to fail")
	}
	if len(out.Errors["status"]) == 0 {
		t.Fatalf("expected status outside the enum to fail")
	}
	if len(out.Errors["title"]) != 0 {
		t.Fatalf("valid title should pass, got %v", out.Errors["title"])
	}
}

func TestStrategy_ValidValuesPass(t *testing.T) {
	strategy := openapischema.New(articleSchema())

	out, err := strategy.Validate(&form.Form{
		Items: articleItems(),
		Values: map[string]any{
			"title":  "hello world",
			"age":    42,
			"status": "draft",
		},
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(out.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", out.Errors)
	}
}

func TestStrategy_FieldsWithoutPropertiesAreSkipped(t *testing.T) {
	strategy := openapischema.New(articleSchema())

	out, err := strategy.Validate(&form.Form{
		Items:  []form.Item{form.Field{Name: "unmapped", Type: form.FieldTypeString}},
		Values: map[string]any{"unmapped": "anything"},
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(out.Errors) != 0 {
		t.Fatalf("fields without a property schema should pass, got %v", out.Errors)
	}
}

func TestStrategy_DoesNotTouchValid(t *testing.T) {
	strategy := openapischema.New(articleSchema())

	out, err := strategy.Validate(&form.Form{Valid: true, Items: articleItems(), Values: map[string]any{"title": "abc"}})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !out.Valid {
		t.Fatalf("strategy must not write Valid")
	}
}

func TestStrategy_MissingSchemaFailsFast(t *testing.T) {
	strategy := openapischema.New(nil)

	if _, err := strategy.Validate(&form.Form{}); err == nil {
		t.Fatalf("expected error for a strategy without a schema")
	}
}

func TestStrategy_NameAndRegistry(t *testing.T) {
	strategy := openapischema.New(articleSchema(), openapischema.WithName("article-schema"))

	registry := validate.NewStrategyRegistry()
	if err := registry.Register(strategy); err != nil {
		t.Fatalf("register: %v", err)
	}
	if !registry.Has("article-schema") {
		t.Fatalf("expected named registration")
	}
}
