package handlers

import (
	"errors"
	"net/http"
	"reflect"
)

// decodeForm copies url-encoded or multipart form values into the string
// fields of the struct v points to, matched by their `form` tag.
func decodeForm(r *http.Request, v any) error {
	if err := r.ParseForm(); err != nil {
		return err
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return errors.New("decodeForm needs a pointer to a struct")
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		name := rt.Field(i).Tag.Get("form")
		if name == "" || name == "-" {
			continue
		}
		if f := rv.Field(i); f.Kind() == reflect.String && f.CanSet() {
			f.SetString(r.FormValue(name))
		}
	}
	return nil
}
