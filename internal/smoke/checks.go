package smoke

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"
)

// check is one contract assertion against the running service.
type check struct {
	name string
	run  func(ctx context.Context, c *HTTPClient, base string) error
}

func expectStatus(r response, want int) error {
	if r.status != want {
		return fmt.Errorf("status %d, want %d (body %q)", r.status, want, r.body)
	}
	return nil
}

func expectBody(r response, want string) error {
	if err := expectStatus(r, http.StatusOK); err != nil {
		return err
	}
	if r.body != want {
		return fmt.Errorf("body %q, want %q", r.body, want)
	}
	return nil
}

// fixedChecks cover every route whose response does not depend on generated input.
func fixedChecks() []check {
	return []check{
		{"GET / renders the home name", func(ctx context.Context, c *HTTPClient, base string) error {
			r, err := c.Get(ctx, base+"/")
			if err != nil {
				return err
			}
			if err := expectStatus(r, http.StatusOK); err != nil {
				return err
			}
			if !strings.Contains(r.body, homeName) {
				return fmt.Errorf("home page does not contain %q", homeName)
			}
			return nil
		}},
		{"GET /about returns the literal text", func(ctx context.Context, c *HTTPClient, base string) error {
			r, err := c.Get(ctx, base+"/about?ignored=1")
			if err != nil {
				return err
			}
			return expectBody(r, aboutText)
		}},
		{"GET /data returns the fixed profile", func(ctx context.Context, c *HTTPClient, base string) error {
			r, err := c.Get(ctx, base+"/data")
			if err != nil {
				return err
			}
			if err := expectStatus(r, http.StatusOK); err != nil {
				return err
			}
			var got map[string]any
			if err := json.Unmarshal([]byte(r.body), &got); err != nil {
				return fmt.Errorf("body is not JSON: %w", err)
			}
			want := map[string]any{"name": "John Doe", "age": float64(30), "city": "New York"}
			if !reflect.DeepEqual(got, want) {
				return fmt.Errorf("profile %v, want %v", got, want)
			}
			return nil
		}},
		{"GET /form renders a POST form", func(ctx context.Context, c *HTTPClient, base string) error {
			r, err := c.Get(ctx, base+"/form")
			if err != nil {
				return err
			}
			if err := expectStatus(r, http.StatusOK); err != nil {
				return err
			}
			if !strings.Contains(r.body, `method="post"`) {
				return fmt.Errorf("form page has no POST form")
			}
			return nil
		}},
		{"GET /form-get renders a GET form", func(ctx context.Context, c *HTTPClient, base string) error {
			r, err := c.Get(ctx, base+"/form-get")
			if err != nil {
				return err
			}
			if err := expectStatus(r, http.StatusOK); err != nil {
				return err
			}
			if !strings.Contains(r.body, `action="/form-get-result"`) {
				return fmt.Errorf("form-get page does not target /form-get-result")
			}
			return nil
		}},
		{"GET /form-get-result without query prints None", func(ctx context.Context, c *HTTPClient, base string) error {
			r, err := c.Get(ctx, base+"/form-get-result")
			if err != nil {
				return err
			}
			return expectBody(r, fmt.Sprintf(getTemplate, noneText, noneText))
		}},
		{"POST /form without password is a client error", func(ctx context.Context, c *HTTPClient, base string) error {
			r, err := c.PostForm(ctx, base+"/form", url.Values{"username": {"someone"}})
			if err != nil {
				return err
			}
			return expectStatus(r, http.StatusBadRequest)
		}},
		{"POST / is not allowed", func(ctx context.Context, c *HTTPClient, base string) error {
			r, err := c.PostForm(ctx, base+"/", url.Values{})
			if err != nil {
				return err
			}
			return expectStatus(r, http.StatusMethodNotAllowed)
		}},
		{"POST /data is not allowed", func(ctx context.Context, c *HTTPClient, base string) error {
			r, err := c.PostForm(ctx, base+"/data", url.Values{})
			if err != nil {
				return err
			}
			return expectStatus(r, http.StatusMethodNotAllowed)
		}},
	}
}

// echoChecks build one POST and one GET check for a credential pair.
func echoChecks(cred Credentials) []check {
	values := url.Values{"username": {cred.Username}, "password": {cred.Password}}
	return []check{
		{"POST /form echoes " + cred.Username, func(ctx context.Context, c *HTTPClient, base string) error {
			r, err := c.PostForm(ctx, base+"/form", values)
			if err != nil {
				return err
			}
			return expectBody(r, fmt.Sprintf(postTemplate, cred.Username, cred.Password))
		}},
		{"GET /form-get-result echoes " + cred.Username, func(ctx context.Context, c *HTTPClient, base string) error {
			r, err := c.Get(ctx, base+"/form-get-result?"+values.Encode())
			if err != nil {
				return err
			}
			return expectBody(r, fmt.Sprintf(getTemplate, cred.Username, cred.Password))
		}},
	}
}
