package httphandler

import (
	"mime/multipart"
	"net/http"
	"strconv"
)

// Uploads parses multipart requests and stores their images.
type Uploads struct {
	files     fileStore
	maxMemory int64
}

func NewUploads(files fileStore, maxMemory int64) Uploads {
	return Uploads{files: files, maxMemory: maxMemory}
}

// one decodes the text fields into dst, when dst is not nil, and saves the
// first file of field.
func (u Uploads) one(r *http.Request, field string, dst any) (string, error) {
	fhs, err := u.parse(r, field, dst)
	if err != nil {
		return "", err
	}
	return u.files.Save(fhs[0])
}

// many is like one but saves every file of field.
func (u Uploads) many(r *http.Request, field string, dst any) ([]string, error) {
	fhs, err := u.parse(r, field, dst)
	if err != nil {
		return nil, err
	}
	return u.files.SaveAll(fhs)
}

func (u Uploads) parse(r *http.Request, field string, dst any) ([]*multipart.FileHeader, error) {
	if err := parseMultipart(r, u.maxMemory); err != nil {
		return nil, err
	}
	if dst != nil {
		if err := decodeForm(r, dst); err != nil {
			return nil, err
		}
	}
	return formFiles(r, field)
}

// discard removes files stored for a request that failed afterwards.
func (u Uploads) discard(names ...string) {
	u.files.Remove(names...)
}

// actor identifies the admin performing a write.
func actor(r *http.Request) string {
	return "admin:" + strconv.FormatInt(session(r).Subject, 10)
}
