package openapi

// NewComponents returns the shared schemas and error responses every API uses.
func NewComponents() *Components {
	errorContent := map[string]*MediaType{
		"application/json": {Schema: SchemaRef("Error")},
	}

	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type: "object",
				Properties: map[string]*Property{
					"error": {Type: "string"},
				},
				Required: []string{"error"},
			},
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Property{
					"page":      {Type: "integer", Example: 1},
					"page_size": {Type: "integer", Example: 20},
					"search":    {Type: "string"},
					"sort":      {Type: "string", Example: "-LastName"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest": {Description: "Invalid request", Content: errorContent},
			"NotFound":   {Description: "Resource not found", Content: errorContent},
			"Conflict":   {Description: "Resource conflict", Content: errorContent},
		},
	}
}

func (c *Components) AddSchemas(schemas map[string]*Schema) {
	for name, s := range schemas {
		c.Schemas[name] = s
	}
}

func (c *Components) AddResponses(responses map[string]*Response) {
	for name, r := range responses {
		c.Responses[name] = r
	}
}
