package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/dafibh/fortuna/portfolio-backend/docs"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

// OpenAPI3Spec is the subset of an OpenAPI 3.0 document built from the
// generated swagger 2.0 docs
type OpenAPI3Spec struct {
	OpenAPI    string                 `json:"openapi"`
	Info       map[string]interface{} `json:"info"`
	Servers    []Server               `json:"servers"`
	Paths      map[string]interface{} `json:"paths"`
	Components map[string]interface{} `json:"components,omitempty"`
}

type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// rewriteRefs points swagger 2.0 $refs at components/schemas and moves
// parameter type fields under a schema object
func rewriteRefs(node interface{}) interface{} {
	switch v := node.(type) {
	case map[string]interface{}:
		_, hasIn := v["in"]
		_, hasName := v["name"]
		if hasIn && hasName {
			return convertParameter(v)
		}

		out := make(map[string]interface{}, len(v))
		for key, value := range v {
			if ref, ok := value.(string); ok && key == "$ref" {
				out[key] = strings.Replace(ref, "#/definitions/", "#/components/schemas/", 1)
				continue
			}
			out[key] = rewriteRefs(value)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = rewriteRefs(item)
		}
		return out
	default:
		return node
	}
}

var schemaFields = []string{"type", "format", "enum", "default", "minimum", "maximum", "items"}

func convertParameter(param map[string]interface{}) map[string]interface{} {
	if param["in"] == "body" {
		return param
	}

	out := make(map[string]interface{})
	for _, field := range []string{"name", "in", "description", "required"} {
		if val, ok := param[field]; ok {
			out[field] = val
		}
	}

	schema := make(map[string]interface{})
	for _, field := range schemaFields {
		if val, ok := param[field]; ok {
			schema[field] = rewriteRefs(val)
		}
	}
	if len(schema) > 0 {
		out["schema"] = schema
	}
	return out
}

// liftFormData turns formData parameters (the icon upload) into a
// multipart requestBody, which is how OpenAPI 3 models file uploads
func liftFormData(paths map[string]interface{}) {
	for _, item := range paths {
		operations, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		for _, op := range operations {
			operation, ok := op.(map[string]interface{})
			if !ok {
				continue
			}
			params, _ := operation["parameters"].([]interface{})

			kept := params[:0:0]
			properties := map[string]interface{}{}
			var required []string
			for _, p := range params {
				param, ok := p.(map[string]interface{})
				if !ok || param["in"] != "formData" {
					kept = append(kept, p)
					continue
				}
				name, _ := param["name"].(string)
				prop := map[string]interface{}{"type": param["type"]}
				if param["type"] == "file" {
					prop = map[string]interface{}{"type": "string", "format": "binary"}
				}
				if desc, ok := param["description"]; ok {
					prop["description"] = desc
				}
				properties[name] = prop
				if req, _ := param["required"].(bool); req {
					required = append(required, name)
				}
			}
			if len(properties) == 0 {
				continue
			}

			schema := map[string]interface{}{"type": "object", "properties": properties}
			if len(required) > 0 {
				schema["required"] = required
			}
			operation["parameters"] = kept
			operation["requestBody"] = map[string]interface{}{
				"required": len(required) > 0,
				"content": map[string]interface{}{
					"multipart/form-data": map[string]interface{}{"schema": schema},
				},
			}
			delete(operation, "consumes")
		}
	}
}

// convertSwagger2 builds the OpenAPI 3 document from a swagger 2.0 one
func convertSwagger2(doc string, servers []Server) (*OpenAPI3Spec, error) {
	var swagger2 map[string]interface{}
	if err := json.Unmarshal([]byte(doc), &swagger2); err != nil {
		return nil, fmt.Errorf("failed to parse swagger doc: %w", err)
	}

	info, _ := swagger2["info"].(map[string]interface{})
	rawPaths, _ := swagger2["paths"].(map[string]interface{})
	paths, _ := rewriteRefs(rawPaths).(map[string]interface{})
	liftFormData(paths)

	components := make(map[string]interface{})
	if secDefs, ok := swagger2["securityDefinitions"].(map[string]interface{}); ok {
		components["securitySchemes"] = secDefs
	}
	if definitions, ok := swagger2["definitions"].(map[string]interface{}); ok {
		components["schemas"] = rewriteRefs(definitions)
	}

	return &OpenAPI3Spec{
		OpenAPI:    "3.0.3",
		Info:       info,
		Servers:    servers,
		Paths:      paths,
		Components: components,
	}, nil
}

// OpenAPI3Handler serves the API docs as OpenAPI 3.0. The document is built
// on first request and reused.
type OpenAPI3Handler struct {
	servers []Server

	once sync.Once
	spec *OpenAPI3Spec
	err  error
}

// NewOpenAPI3Handler lists publicURL first as the serving instance
func NewOpenAPI3Handler(publicURL string, extra ...Server) *OpenAPI3Handler {
	servers := []Server{{URL: strings.TrimRight(publicURL, "/") + "/api/v1", Description: "This server"}}
	return &OpenAPI3Handler{servers: append(servers, extra...)}
}

// Serve handles GET /swagger/openapi3.json
func (h *OpenAPI3Handler) Serve(c echo.Context) error {
	h.once.Do(func() {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			h.err = err
			return
		}
		h.spec, h.err = convertSwagger2(doc, h.servers)
	})
	if h.err != nil {
		return NewInternalError(c, "API documentation unavailable")
	}
	return c.JSON(http.StatusOK, h.spec)
}
