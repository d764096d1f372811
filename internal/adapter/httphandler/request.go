package httphandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// fileStore keeps uploaded images and returns their stored names.
type fileStore interface {
	Save(*multipart.FileHeader) (string, error)
	SaveAll([]*multipart.FileHeader) ([]string, error)
	Remove(names ...string)
}

func badRequest(err error) error {
	return fmt.Errorf("%w: %w", ErrBadRequest, err)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return badRequest(err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		msgs = append(msgs, msg)
	}
	return badRequest(errors.New(strings.Join(msgs, "; ")))
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return badRequest(fmt.Errorf("invalid JSON: %w", err))
	}
	return validateStruct(dst)
}

func parseMultipart(r *http.Request, maxMemory int64) error {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return badRequest(fmt.Errorf("invalid multipart form: %w", err))
	}
	return nil
}

// decodeForm maps multipart text fields onto dst using its json tags.
func decodeForm(r *http.Request, dst any) error {
	values := make(map[string]any, len(r.MultipartForm.Value))
	for k, vs := range r.MultipartForm.Value {
		if len(vs) != 0 {
			values[k] = vs[0]
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           dst,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(values); err != nil {
		return badRequest(err)
	}
	return validateStruct(dst)
}

func formFiles(r *http.Request, field string) ([]*multipart.FileHeader, error) {
	fhs := r.MultipartForm.File[field]
	if len(fhs) == 0 {
		return nil, badRequest(fmt.Errorf("file field %q is required", field))
	}
	return fhs, nil
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest(fmt.Errorf("invalid id %q", raw))
	}
	return id, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest(fmt.Errorf("query %q is not a number", name))
	}
	return n, nil
}

func queryInt64(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, badRequest(fmt.Errorf("query %q is not a number", name))
	}
	return n, nil
}
