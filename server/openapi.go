package server

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

func stringArray(example ...interface{}) *openapi3.Schema {
	s := openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
	s.Example = example
	return s
}

func exampleString(example string) *openapi3.Schema {
	s := openapi3.NewStringSchema()
	s.Example = example
	return s
}

func schemaRef(schemas openapi3.Schemas, name string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+name, schemas[name].Value)
}

func jsonResponse(description string, schema *openapi3.SchemaRef) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription(description).WithJSONSchemaRef(schema)}
}

// openAPIDocument describes the HTTP surface. host is used as the server URL.
func openAPIDocument(host string) *openapi3.T {
	executionTime := openapi3.NewFloat64Schema().WithMin(0)
	executionTime.Description = "Processing time in milliseconds"
	executionTime.Example = float64(0)

	request := openapi3.NewObjectSchema().
		WithProperty("includes", stringArray("1-10", "20-30")).
		WithProperty("excludes", stringArray("5-7", "25-27"))
	request.Required = []string{"includes", "excludes"}

	schemas := openapi3.Schemas{
		"HealthResponse": openapi3.NewSchemaRef("", openapi3.NewObjectSchema().
			WithProperty("status", exampleString("healthy")).
			WithProperty("timestamp", exampleString("2025-08-22T15:44:25.898Z")).
			WithProperty("service", exampleString(ServiceName)).
			WithProperty("version", exampleString(Version))),
		"IntervalRequest": openapi3.NewSchemaRef("", request),
		"IntervalResponse": openapi3.NewSchemaRef("", openapi3.NewObjectSchema().
			WithProperty("result", stringArray("1-4", "8-10", "20-24", "28-30")).
			WithProperty("executionTime", executionTime)),
		"ErrorResponse": openapi3.NewSchemaRef("", openapi3.NewObjectSchema().
			WithProperty("error", exampleString("Processing failed")).
			WithProperty("details", exampleString("Invalid includes: Invalid input interval format: a-b. Expected format: 'start-end'")).
			WithProperty("message", openapi3.NewStringSchema())),
	}
	errorRef := schemaRef(schemas, "ErrorResponse")

	process := openapi3.NewOperation()
	process.Summary = "Process interval include/exclude operations"
	process.Tags = []string{"Intervals"}
	process.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(schemaRef(schemas, "IntervalRequest")),
	}
	process.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusOK, jsonResponse("OK", schemaRef(schemas, "IntervalResponse"))),
		openapi3.WithStatus(http.StatusBadRequest, jsonResponse("Bad request", errorRef)),
		openapi3.WithStatus(http.StatusRequestEntityTooLarge, jsonResponse("Payload too large", errorRef)),
		openapi3.WithStatus(http.StatusInternalServerError, jsonResponse("Internal error", errorRef)),
	)

	health := openapi3.NewOperation()
	health.Summary = "Health check endpoint"
	health.Tags = []string{"Health"}
	health.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusOK, jsonResponse("OK", schemaRef(schemas, "HealthResponse"))),
	)

	return &openapi3.T{
		OpenAPI: "3.0.0",
		Info: &openapi3.Info{
			Title:       "Interval Processor API",
			Version:     Version,
			Description: "API for processing intervals",
		},
		Servers:    openapi3.Servers{{URL: "http://" + host}},
		Components: &openapi3.Components{Schemas: schemas},
		Paths: openapi3.NewPaths(
			openapi3.WithPath(IntervalsPath, &openapi3.PathItem{Post: process}),
			openapi3.WithPath(HealthPath, &openapi3.PathItem{Get: health}),
		),
	}
}
