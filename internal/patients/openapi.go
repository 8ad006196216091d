package patients

import "github.com/motech/mrs/pkg/openapi"

type spec struct {
	List   *openapi.Operation
	Find   *openapi.Operation
	Create *openapi.Operation
	Update *openapi.Operation
	Delete *openapi.Operation
}

var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List patients",
		Description: "Returns a paginated list of registered patients with optional filtering",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Search query (matches MOTECH ID and names)", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields. Prefix with - for descending", false),
			openapi.QueryParam("facility", "string", "Filter by facility", false),
			openapi.QueryParam("gender", "string", "Filter by gender (M or F)", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated list of patients", "PatientPageResult"),
		},
	},
	Find: &openapi.Operation{
		Summary:     "Get patient",
		Description: "Returns the patient registered under a MOTECH ID",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "MOTECH ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Patient details", "Patient"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Register patient",
		Description: "Registers a new patient",
		RequestBody: openapi.RequestBodyJSON("PatientCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Registered patient", "Patient"),
			400: openapi.ResponseJSON("Validation failure", "ValidationError"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update patient",
		Description: "Replaces a patient's registration details",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "MOTECH ID"),
		},
		RequestBody: openapi.RequestBodyJSON("PatientCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated patient", "Patient"),
			400: openapi.ResponseJSON("Validation failure", "ValidationError"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete patient",
		Description: "Removes a patient registration",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "MOTECH ID"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Patient deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Patient": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"id":                   {Type: "string", Format: "uuid"},
				"motech_id":            {Type: "string"},
				"first_name":           {Type: "string"},
				"middle_name":          {Type: "string"},
				"last_name":            {Type: "string"},
				"preferred_name":       {Type: "string"},
				"gender":               {Type: "string", Enum: []string{"M", "F"}},
				"date_of_birth":        {Type: "string", Format: "date-time"},
				"birth_date_estimated": {Type: "boolean"},
				"address":              {Type: "string"},
				"facility":             {Type: "string"},
				"dead":                 {Type: "boolean"},
				"death_date":           {Type: "string", Format: "date-time"},
				"created_at":           {Type: "string", Format: "date-time"},
				"updated_at":           {Type: "string", Format: "date-time"},
			},
		},
		"PatientCommand": {
			Type:     "object",
			Required: []string{"motech_id", "first_name", "last_name", "gender", "date_of_birth", "facility"},
			Properties: map[string]*openapi.Property{
				"motech_id":            {Type: "string", Example: "1000123"},
				"first_name":           {Type: "string", Example: "Ama"},
				"middle_name":          {Type: "string"},
				"last_name":            {Type: "string", Example: "Mensah"},
				"preferred_name":       {Type: "string"},
				"gender":               {Type: "string", Enum: []string{"M", "F"}},
				"date_of_birth":        {Type: "string", Format: "date", Example: "1990-04-12"},
				"birth_date_estimated": {Type: "boolean"},
				"address":              {Type: "string"},
				"facility":             {Type: "string", Example: "Kassena-Nankana West"},
				"dead":                 {Type: "boolean"},
				"death_date":           {Type: "string", Format: "date", Description: "Required when dead is true"},
			},
		},
		"ValidationError": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"error":  {Type: "string"},
				"fields": {Type: "object", Description: "Messages keyed by field name"},
			},
		},
		"PatientPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"data":        {Type: "array", Items: openapi.SchemaRef("Patient")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	}
}
