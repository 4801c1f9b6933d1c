package apiclient

import (
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/me/insadmin/pkg/model"
)

// Export formats accepted by the remote report endpoint.
var ExportFormats = []string{"pdf", "xlsx", "csv"}

// Download is a streamed export. The caller must close Body.
type Download struct {
	Filename    string
	ContentType string
	Body        io.ReadCloser
}

// Export streams a report of entity in format. Extra filters such as
// from, to and centerId are forwarded verbatim.
func (c *Client) Export(ctx context.Context, token, entity, format string, filters url.Values) (*Download, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if !slices.Contains(ExportFormats, format) {
		return nil, model.NewValidationError("Invalid export", model.FieldError{Field: "format", Message: "must be one of pdf, xlsx, csv"})
	}
	entity = strings.TrimSpace(entity)
	if entity == "" || strings.ContainsAny(entity, "/?#") {
		return nil, model.NewValidationError("Invalid export", model.FieldError{Field: "entity", Message: "invalid entity"})
	}

	q := url.Values{}
	for k, vals := range filters {
		for _, v := range vals {
			if v != "" {
				q.Add(k, v)
			}
		}
	}
	q.Set("format", format)

	resp, err := c.do(ctx, token, call{
		op:     "exports." + entity,
		method: http.MethodGet,
		path:   "/admin/exports/" + escape(entity),
		query:  q,
		stream: true,
	})
	if err != nil {
		return nil, err
	}
	ct := resp.Header().Get("Content-Type")
	if ct == "" {
		ct = mime.TypeByExtension("." + format)
	}
	return &Download{
		Filename:    exportFilename(resp.Header().Get("Content-Disposition"), entity, format),
		ContentType: ct,
		Body:        resp.RawBody(),
	}, nil
}

// exportFilename takes the filename from a Content-Disposition header,
// falling back to entity.format.
func exportFilename(disposition, entity, format string) string {
	if disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			if name := path.Base(params["filename"]); name != "" && name != "." && name != "/" {
				return name
			}
		}
	}
	return entity + "." + format
}

func readLimited(r io.Reader, n int64) []byte {
	b, _ := io.ReadAll(io.LimitReader(r, n))
	return b
}
