package itinerary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeClassifiesLines(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"08:00: Khởi hành",
		"→ Đón khách tại điểm hẹn",
		"",
		"![Bãi biển](https://cdn.example.com/beach.jpg)",
		"Tự do khám phá",
	}, "\n")

	steps := Decode(text)
	require.Len(t, steps, 4)

	assert.Equal(t, Step{Time: "08:00", Activity: "Khởi hành"}, steps[0])
	assert.Equal(t, Step{Description: "Đón khách tại điểm hẹn"}, steps[1])
	assert.Equal(t, Step{Images: []string{"https://cdn.example.com/beach.jpg"}}, steps[2])
	assert.Equal(t, Step{Activity: "Tự do khám phá"}, steps[3])
}

func TestDecodeImageBetweenTimedSteps(t *testing.T) {
	t.Parallel()

	text := "09:00: Tham quan\n![Toàn cảnh](https://cdn.example.com/view.jpg)\n10:30: Ăn trưa"

	steps := Decode(text)
	require.Len(t, steps, 3)
	assert.Equal(t, "09:00", steps[0].Time)
	assert.Equal(t, []string{"https://cdn.example.com/view.jpg"}, steps[1].Images)
	assert.Equal(t, "10:30", steps[2].Time)
}

func TestDecodeImageWinsOverTimedPrefix(t *testing.T) {
	t.Parallel()

	// A line that carries an inline image is an image step even when it also
	// starts with a clock time.
	steps := Decode("09:00: ![x](https://cdn.example.com/a.jpg)")
	require.Len(t, steps, 1)
	assert.Empty(t, steps[0].Time)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, steps[0].Images)
}

func TestDecodeThenRenderMixedPlan(t *testing.T) {
	t.Parallel()

	text := "08:00: Start\n→ detail one\n![x](http://img/1.png)"

	steps := Decode(text)
	require.Len(t, steps, 3)
	assert.Equal(t, Step{Time: "08:00", Activity: "Start"}, steps[0])
	assert.Equal(t, Step{Description: "detail one"}, steps[1])
	assert.Equal(t, Step{Images: []string{"http://img/1.png"}}, steps[2])

	blocks := Render(text)
	require.Len(t, blocks, 3)
	assert.Equal(t, BlockText, blocks[0].Kind)
	assert.Equal(t, BlockText, blocks[1].Kind)
	assert.Equal(t, Block{Kind: BlockImage, Alt: "x", URL: "http://img/1.png"}, blocks[2])
}

func TestDecodeEmptyText(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Decode(""))
	assert.Nil(t, Decode("\n  \n\t\n"))
}

func TestEncodeInverseOfDecode(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"08:00: Khởi hành",
		"→ Đón khách tại điểm hẹn",
		"12:00: Ăn trưa",
		"Tự do tắm biển",
	}, "\n")

	assert.Equal(t, text, Encode(Decode(text)))
}

func TestEncodeLegacySteps(t *testing.T) {
	t.Parallel()

	steps := []Step{
		{
			Time:        "08:00",
			Activity:    "Khởi hành",
			Description: "Đón khách tại khách sạn. Di chuyển ra bến tàu.",
			Images:      []string{"https://cdn.example.com/pier.jpg"},
		},
		{Activity: "Tự do khám phá"},
	}

	expected := strings.Join([]string{
		"08:00: Khởi hành",
		"→ Đón khách tại khách sạn.",
		"→ Di chuyển ra bến tàu.",
		"![Hình ảnh](https://cdn.example.com/pier.jpg)",
		"Tự do khám phá",
	}, "\n")

	assert.Equal(t, expected, Encode(steps))
}

func TestEncodeEmptySteps(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Encode(nil))
	assert.Equal(t, "", Encode([]Step{}))
}

func TestFormatTime(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"empty reads not available", "", "N/A"},
		{"clock value passes through", "14:05", "14:05"},
		{"rfc3339 reduced to wall clock", "2024-01-01T14:05:00Z", "14:05"},
		{"datetime without zone", "2024-01-01T07:30:00", "07:30"},
		{"unparseable passes through", "sáng sớm", "sáng sớm"},
		{"datetime-ish garbage passes through", "Txyz", "Txyz"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, FormatTime(tc.value))
		})
	}
}

func TestRenderBlocks(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"08:00: Khởi hành",
		"",
		"![Bãi biển](https://cdn.example.com/beach.jpg)",
		"→ Đón khách",
	}, "\n")

	blocks := Render(text)
	require.Len(t, blocks, 4)

	assert.Equal(t, Block{Kind: BlockText, Text: "08:00: Khởi hành"}, blocks[0])
	assert.Equal(t, Block{Kind: BlockSpacer}, blocks[1])
	assert.Equal(t, Block{Kind: BlockImage, Alt: "Bãi biển", URL: "https://cdn.example.com/beach.jpg"}, blocks[2])
	assert.Equal(t, Block{Kind: BlockText, Text: "→ Đón khách"}, blocks[3])
}

func TestRenderEmptyText(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Render(""))
	assert.Nil(t, Render("   "))
}
