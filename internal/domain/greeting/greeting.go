// Package greeting holds the fixed page data and the form-echo formatting used by the HTTP routes.
package greeting

import (
	"fmt"
	"net/url"
)

// Form field names shared by both form flows.
const (
	FieldUsername = "username"
	FieldPassword = "password"
)

// HomeName is bound as "name" into the home page template.
const HomeName = "Aakash"

// AboutText is the literal body of GET /about.
const AboutText = "This is a simple Flask web application."

// noneText stands in for a query value that was never sent.
const noneText = "None"

// Profile is the static record served by GET /data.
type Profile struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
	City string `json:"city"`
}

// DefaultProfile returns the fixed profile. A fresh value is returned on every call.
func DefaultProfile() Profile {
	return Profile{Name: "John Doe", Age: 30, City: "New York"}
}

// Credentials are the two strictly required fields of the POST form.
type Credentials struct {
	Username string
	Password string
}

// OptionalCredentials are read leniently from a query string; nil means the key was absent.
type OptionalCredentials struct {
	Username *string
	Password *string
}

// RequireCredentials reads both fields from a submitted form body.
// A missing key is an error; a present but empty value is accepted.
func RequireCredentials(values url.Values) (Credentials, error) {
	username, err := require(values, FieldUsername)
	if err != nil {
		return Credentials{}, err
	}
	password, err := require(values, FieldPassword)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{Username: username, Password: password}, nil
}

func require(values url.Values, key string) (string, error) {
	v, ok := values[key]
	if !ok || len(v) == 0 {
		return "", &MissingFieldError{Field: key}
	}
	return v[0], nil
}

// LookupCredentials reads both fields from a query string without failing on absence.
func LookupCredentials(values url.Values) OptionalCredentials {
	return OptionalCredentials{
		Username: lookup(values, FieldUsername),
		Password: lookup(values, FieldPassword),
	}
}

func lookup(values url.Values, key string) *string {
	v, ok := values[key]
	if !ok || len(v) == 0 {
		return nil
	}
	s := v[0]
	return &s
}

// FormatPost builds the POST /form response body.
func FormatPost(c Credentials) string {
	return fmt.Sprintf("[POST] Hello, %s. Your password is %s", c.Username, c.Password)
}

// FormatGet builds the GET /form-get-result response body. Absent values print as None.
func FormatGet(c OptionalCredentials) string {
	return fmt.Sprintf("[GET] Hello, %s. Your password is %s", orNone(c.Username), orNone(c.Password))
}

func orNone(s *string) string {
	if s == nil {
		return noneText
	}
	return *s
}
