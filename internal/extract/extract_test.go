package extract

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/canit0221/RA6-vacAItion-sub000/internal/domain"
)

func TestExtractSingleLine(t *testing.T) {
	fields := Extract("📍 위치: Seoul", DefaultMarkers())

	require.Equal(t, "Seoul", fields[LabelLocation])
	require.Equal(t, domain.Unknown, fields[LabelReason])
	require.Equal(t, domain.Unknown, fields[LabelCategory])
}

func TestExtractBoundedByOtherMarker(t *testing.T) {
	// Colocated fields on one line: location must stop at the reason marker.
	text := "📍 위치: Seoul 💫 추천 이유: nice view"
	fields := Extract(text, DefaultMarkers())

	require.Equal(t, "Seoul", fields[LabelLocation])
	require.Equal(t, "nice view", fields[LabelReason])
}

func TestExtractBoundedByNewline(t *testing.T) {
	text := "📍 위치: Seoul\nsome unrelated prose"
	fields := Extract(text, DefaultMarkers())

	require.Equal(t, "Seoul", fields[LabelLocation])
}

func TestExtractAliasFallback(t *testing.T) {
	// The plain-dash alias from the reply format, without the emoji.
	text := "- 위치: 서울 중구\n- 추천 이유: 야경이 좋음"
	fields := Extract(text, DefaultMarkers())

	require.Equal(t, "서울 중구", fields[LabelLocation])
	require.Equal(t, "야경이 좋음", fields[LabelReason])
}

func TestExtractEmptyValueIsUnknown(t *testing.T) {
	fields := Extract("📍 위치:\n💫 추천 이유: good", DefaultMarkers())

	require.Equal(t, domain.Unknown, fields[LabelLocation])
	require.Equal(t, "good", fields[LabelReason])
}

func TestFieldsMergeFillsOnlyUnknown(t *testing.T) {
	dst := Fields{LabelLocation: "Seoul", LabelReason: domain.Unknown}
	src := Fields{LabelLocation: "Busan", LabelReason: "calm"}

	dst.Merge(src)

	require.Equal(t, "Seoul", dst[LabelLocation])
	require.Equal(t, "calm", dst[LabelReason])
}

func TestCleanTitle(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"1️⃣ Namsan Tower +", "Namsan Tower"},
		{"**1. [남산타워]**", "남산타워"},
		{"2. Spring Festival", "Spring Festival"},
		{"🔟 Tenth Place", "Tenth Place"},
		{"2️⃣", ""},
		{"**Spring Festival**", "Spring Festival"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, CleanTitle(tc.in), "input %q", tc.in)
	}
}

func TestValidTitleRejectsListMarkers(t *testing.T) {
	require.False(t, ValidTitle(""))
	require.False(t, ValidTitle("3"))
	require.False(t, ValidTitle("12."))
	require.True(t, ValidTitle("남산"))
	require.True(t, ValidTitle("Namsan Tower"))
}

func TestBuildRoundTrip(t *testing.T) {
	text := "1️⃣ Namsan Tower +\n📍 위치: Seoul\n💫 추천 이유: nice view"
	fields := Extract(text, DefaultMarkers())
	rec := Build("1️⃣ Namsan Tower +", fields, nil)

	require.NotNil(t, rec)
	require.Equal(t, "Namsan Tower", rec.PlaceName)
	require.Equal(t, "Seoul", rec.Location)
	require.Equal(t, "nice view", rec.Reason)
	require.Equal(t, domain.KindPlace, rec.Kind)
	require.Equal(t, domain.Unknown, rec.Category)
	require.Equal(t, domain.Unknown, rec.Reference)
}

func TestBuildRejectsNumericTitle(t *testing.T) {
	fields := Extract("📍 위치: Seoul", DefaultMarkers())

	require.Nil(t, Build("2️⃣", fields, nil))
	require.Nil(t, Build("3.", fields, nil))
}

func TestBuildEventOverwritesReference(t *testing.T) {
	text := "**Spring Festival**\n📅 일시: 2024-05-01\n🔍 참고: some link"
	fields := Extract(text, DefaultMarkers())
	rec := Build("Spring Festival", fields, nil)

	require.NotNil(t, rec)
	require.Equal(t, domain.KindEvent, rec.Kind)
	require.Equal(t, "2024-05-01", rec.EventDate)
	// The reference slot is reused for the event date.
	require.Equal(t, "2024-05-01", rec.Reference)
}

func TestBuildAlreadyTaggedYieldsNil(t *testing.T) {
	fields := Extract("📍 위치: Seoul", DefaultMarkers())
	tagged := func(name string) bool { return name == "Namsan Tower" }

	require.Nil(t, Build("1️⃣ Namsan Tower +", fields, tagged))
	require.NotNil(t, Build("2. Gyeongbokgung", fields, tagged))
}
