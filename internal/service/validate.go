package service

import (
	"io"
	"mime"
	"strings"
)

// UploadInput is an upload that passed validation. It can only be built by
// NewUploadInput; Upload rejects the zero value.
type UploadInput struct {
	r           io.Reader
	filename    string
	contentType string
	size        int64
}

// NewUploadInput validates an uploaded part. The filename is the client's
// original name; contentType is the part's declared Content-Type.
func NewUploadInput(r io.Reader, filename, contentType string, size int64) (UploadInput, error) {
	if r == nil || strings.TrimSpace(filename) == "" {
		return UploadInput{}, ErrFileRequired
	}
	if !isImage(contentType) {
		return UploadInput{}, ErrNotImage
	}
	return UploadInput{r: r, filename: filename, contentType: contentType, size: size}, nil
}

// Filename returns the client-supplied name.
func (in UploadInput) Filename() string { return in.filename }

// ContentType returns the declared content type.
func (in UploadInput) ContentType() string { return in.contentType }

func (in UploadInput) valid() bool { return in.r != nil }

func isImage(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mt, "image/")
}
