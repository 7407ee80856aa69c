package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Domain contains the employee records exchanged with the directory API.

// Employee is a single directory entry.
type Employee struct {
	Name    string `json:"name" yaml:"name"`
	Profile string `json:"profile" yaml:"profile"`
}

// EmployeeResponse is the payload returned by the employees endpoint.
type EmployeeResponse struct {
	Message   string     `json:"message"`
	Employees []Employee `json:"employees"`
}

// wireResponse mirrors EmployeeResponse with an optional employees list.
type wireResponse struct {
	Message   string      `json:"message"`
	Employees *[]Employee `json:"employees"`
}

// DecodeEmployeeResponse decodes a response body. A missing or null employees
// field resolves to an empty, non-nil slice.
func DecodeEmployeeResponse(body []byte) (EmployeeResponse, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return EmployeeResponse{}, errors.New("empty body")
	}
	if trimmed[0] != '{' {
		return EmployeeResponse{}, errors.New("decode employees payload: body is not a JSON object")
	}

	var wire wireResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return EmployeeResponse{}, fmt.Errorf("decode employees payload: %w", err)
	}

	resp := EmployeeResponse{Message: wire.Message, Employees: []Employee{}}
	if wire.Employees != nil && *wire.Employees != nil {
		resp.Employees = *wire.Employees
	}
	return resp, nil
}
