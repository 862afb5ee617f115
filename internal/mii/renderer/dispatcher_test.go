package renderer

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "miigate/pkg/domain-errors"
)

func TestClassify(t *testing.T) {
	t.Run("any 94-character payload picks the first-gen branch", func(t *testing.T) {
		for _, data := range []string{
			strings.Repeat("x", 94),
			strings.Repeat("0", 94),
			strings.Repeat("+", 94),
		} {
			assert.Equal(t, BranchFirstGenStudio, Classify(data))
		}
	})

	t.Run("94-character hex is still first-gen", func(t *testing.T) {
		// Inherited ambiguity: a 94-char hex string would render as legacy
		// data on real hardware, but length wins here. The precedence is
		// deliberate and must not be "fixed".
		assert.Equal(t, BranchFirstGenStudio, Classify(strings.Repeat("a", 94)))
	})

	t.Run("hex of any other length picks the legacy branch", func(t *testing.T) {
		for _, data := range []string{
			"abcdef",
			strings.Repeat("A", 148),
			"0123456789abcdefABCDEF",
		} {
			assert.Equal(t, BranchLegacyHex, Classify(data), "input %q", data)
		}
	})

	t.Run("everything else picks the modern branch", func(t *testing.T) {
		for _, data := range []string{
			"AwAAQOlVognnx0GC2/uogAOzuI0n2QAAAFA",
			"not hex at all",
			"",
		} {
			assert.Equal(t, BranchModern, Classify(data), "input %q", data)
		}
	})
}

type fakeRenderer struct {
	calls int
	last  string
	body  string
	err   error
}

func (f *fakeRenderer) RenderFace(_ context.Context, data string) (io.ReadCloser, error) {
	f.calls++
	f.last = data
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.body)), nil
}

func (f *fakeRenderer) RenderHex(ctx context.Context, hexData string) (io.ReadCloser, error) {
	return f.RenderFace(ctx, hexData)
}

func TestDispatcherRender(t *testing.T) {
	ctx := context.Background()

	t.Run("dispatches to exactly one branch", func(t *testing.T) {
		cases := []struct {
			name string
			data string
			want string
		}{
			{"share-link payload", strings.Repeat("z", 94), "first-gen"},
			{"legacy hex", "8a2b4c", "legacy"},
			{"opaque payload", "AwAAQOlV+/==", "modern"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				firstGen := &fakeRenderer{body: "first-gen"}
				legacy := &fakeRenderer{body: "legacy"}
				modern := &fakeRenderer{body: "modern"}
				d := NewDispatcher(firstGen, legacy, modern)

				body, err := d.Render(ctx, tc.data)
				require.NoError(t, err)
				defer body.Close()

				got, err := io.ReadAll(body)
				require.NoError(t, err)
				assert.Equal(t, tc.want, string(got))
				assert.Equal(t, 1, firstGen.calls+legacy.calls+modern.calls)
			})
		}
	})

	t.Run("payload reaches the selected service verbatim", func(t *testing.T) {
		legacy := &fakeRenderer{body: "png"}
		d := NewDispatcher(&fakeRenderer{}, legacy, &fakeRenderer{})

		body, err := d.Render(ctx, "abcdef012345")
		require.NoError(t, err)
		body.Close()

		assert.Equal(t, "abcdef012345", legacy.last)
	})

	t.Run("branch failure maps to upstream error", func(t *testing.T) {
		modern := &fakeRenderer{err: assert.AnError}
		d := NewDispatcher(&fakeRenderer{}, &fakeRenderer{}, modern)

		_, err := d.Render(ctx, "not hex")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUpstream))
	})
}
