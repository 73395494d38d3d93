package router

import (
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/pulsegram/backend/pkg/errorx"
)

// bindRequest fills the request struct from the JSON body (for methods
// carrying one), then from query parameters, then from path placeholders.
// Fields are matched by their json tag.
func bindRequest(r *http.Request, params map[string]string, req any) error {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return errorx.New(errorx.BadRequest, "Cannot read the request body")
		}

		if len(body) > 0 {
			if err := json.Unmarshal(body, req); err != nil {
				return errorx.New(errorx.BadRequest, "Invalid json body")
			}
		}
	}

	v := reflect.ValueOf(req).Elem()
	for i := 0; i < v.NumField(); i++ {
		name, ok := v.Type().Field(i).Tag.Lookup("json")
		if !ok {
			continue
		}

		value, ok := params[name]
		if !ok {
			if r.URL.Query().Has(name) {
				value = r.URL.Query().Get(name)
			} else {
				continue
			}
		}

		if err := setField(v.Field(i), value); err != nil {
			return errorx.New(errorx.BadRequest, "Invalid value of %s", name)
		}
	}

	return nil
}

func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	}

	return nil
}
