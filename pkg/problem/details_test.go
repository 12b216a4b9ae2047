package problem

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"errkit/pkg/errx"
)

var (
	docsCode = errx.MustCode("ORD_404", "Order not found",
		errx.WithSeverity(errx.SeverityWarning),
		errx.WithDocumentation("https://docs.example.com/errors/ORD_404"))
	plainCode = errx.MustCode("DB_001", "Database unavailable")
)

func testError(t *testing.T) *errx.Error {
	t.Helper()
	f := errx.NewFactory(errx.WithClock(func() time.Time {
		return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	}))
	inner, err := f.Create(plainCode)
	require.NoError(t, err)
	e, err := f.Create(docsCode, errx.WithMessage("order 42 does not exist"), errx.WithCause(inner))
	require.NoError(t, err)
	e, err = e.WithContext("orderId", "42")
	require.NoError(t, err)
	e, err = e.WithMetadata("tenant", "acme")
	require.NoError(t, err)
	return e
}

func TestFromError(t *testing.T) {
	d, err := FromError(testError(t), WithStatus(http.StatusNotFound), WithInstance("/orders/42"))
	require.NoError(t, err)

	assert.Equal(t, "https://docs.example.com/errors/ORD_404", d.Type)
	assert.Equal(t, "Order not found", d.Title)
	assert.Equal(t, "order 42 does not exist", d.Detail)
	assert.Equal(t, "/orders/42", d.Instance)
	require.NotNil(t, d.Status)
	assert.Equal(t, http.StatusNotFound, *d.Status)

	want := map[string]any{
		ExtCode:      "ORD_404",
		ExtSeverity:  "Warning",
		ExtTimestamp: "2024-05-01T10:00:00Z",
		ExtContext:   []errx.ContextEntry{{Key: "orderId", Value: "42"}},
		ExtMetadata:  map[string]any{"tenant": "acme"},
		ExtInner:     "DB_001",
	}
	if diff := cmp.Diff(want, d.Extensions); diff != "" {
		t.Errorf("Extensions mismatch (-want +got):\n%s", diff)
	}
}

func TestFromError_Defaults(t *testing.T) {
	d, err := FromError(errx.MustNew(plainCode))
	require.NoError(t, err)

	assert.Equal(t, DefaultType, d.Type)
	assert.Nil(t, d.Status)
	assert.Empty(t, d.Instance)
	assert.NotContains(t, d.Extensions, ExtContext)
	assert.NotContains(t, d.Extensions, ExtMetadata)
	assert.NotContains(t, d.Extensions, ExtInner)
	assert.Equal(t, "Error", d.Extensions[ExtSeverity])
}

func TestFromError_ExplicitType(t *testing.T) {
	d, err := FromError(errx.MustNew(docsCode), WithType("https://example.com/probs/orders"))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/probs/orders", d.Type)
}

func TestFromError_Nil(t *testing.T) {
	_, err := FromError(nil)
	assert.ErrorIs(t, err, errx.ErrValidation)
}

func TestMarshal_OmitsAbsentMembers(t *testing.T) {
	d, err := FromError(errx.MustNew(plainCode))
	require.NoError(t, err)
	d.Extensions = nil

	out, err := Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"about:blank","title":"Database unavailable","detail":"Database unavailable"}`, string(out))
}

func TestMarshal_CamelCaseExtensions(t *testing.T) {
	d, err := FromError(testError(t), WithStatus(404))
	require.NoError(t, err)

	out, err := Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"context":[{"key":"orderId","value":"42"}]`)
	assert.Contains(t, string(out), `"status":404`)
	assert.NotContains(t, string(out), "\n")
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{name: "all members", opts: []Option{WithStatus(409), WithInstance("urn:request:1"), WithType("https://example.com/conflict")}},
		{name: "no optionals"},
		{name: "zero status", opts: []Option{WithStatus(0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := FromError(testError(t), tt.opts...)
			require.NoError(t, err)

			data, err := Marshal(d)
			require.NoError(t, err)
			back, err := Unmarshal(data)
			require.NoError(t, err)

			assert.Equal(t, d.Type, back.Type)
			assert.Equal(t, d.Title, back.Title)
			assert.Equal(t, d.Status, back.Status)
			assert.Equal(t, d.Detail, back.Detail)
			assert.Equal(t, d.Instance, back.Instance)
		})
	}
}

func TestUnmarshal_Validation(t *testing.T) {
	_, err := Unmarshal([]byte(`{"type":"about:blank","title":" ","detail":"d"}`))
	assert.ErrorIs(t, err, errx.ErrValidation)

	_, err = Unmarshal([]byte(`{not json`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, errx.ErrValidation)
}

func TestWrite(t *testing.T) {
	d, err := FromError(testError(t), WithStatus(http.StatusNotFound))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, Write(rec, d))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ContentType, rec.Header().Get("Content-Type"))
	back, err := Unmarshal(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, d.Detail, back.Detail)
}

func TestWrite_DefaultStatus(t *testing.T) {
	d, err := FromError(errx.MustNew(plainCode))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, Write(rec, d))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
