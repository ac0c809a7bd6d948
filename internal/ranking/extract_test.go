package ranking

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractUniversities(t *testing.T) {
	names, err := ExtractUniversities(strings.NewReader(leagueTablePage("University of Cambridge", "University of Oxford")))
	require.NoError(t, err)
	assert.Equal(t, []string{"1University of Cambridge", "2University of Oxford"}, names)
}

func TestExtractUniversities_TruncatesToTwenty(t *testing.T) {
	all := make([]string, 25)
	for i := range all {
		all[i] = fmt.Sprintf("Uni %02d", i+1)
	}

	names, err := ExtractUniversities(strings.NewReader(leagueTablePage(all...)))
	require.NoError(t, err)
	assert.Len(t, names, MaxEntries)
	assert.Equal(t, "20Uni 20", names[19])
}

func TestExtractUniversities_ClassMustMatchExactly(t *testing.T) {
	page := `<ul>
<li class="swiper-slide uni_nam lt_list2">Header</li>
<li class="swiper-slide uni_nam lt_list2 extra">AVIEW COURSES</li>
</ul>`
	_, err := ExtractUniversities(strings.NewReader(page))
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestExtractUniversities_MissingTable(t *testing.T) {
	for name, page := range map[string]string{
		"no items":      `<html><body><p>maintenance</p></body></html>`,
		"only one item": `<ul><li class="swiper-slide uni_nam lt_list2">AVIEW COURSES</li></ul>`,
		"empty item":    `<ul><li class="swiper-slide uni_nam lt_list2">x</li><li class="swiper-slide uni_nam lt_list2"> VIEW COURSES </li></ul>`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ExtractUniversities(strings.NewReader(page))
			assert.ErrorIs(t, err, ErrTableNotFound)
		})
	}
}

func TestSectors(t *testing.T) {
	all := Sectors()
	require.Len(t, all, 8)
	assert.Equal(t, "art-and-design", all[0].Key)

	s, ok := Lookup("business-and-management-studies")
	require.True(t, ok)
	assert.Equal(t, "Études Commerciales", s.Label)

	_, ok = Lookup("astrology")
	assert.False(t, ok)

	all[0].Label = "mutated"
	again, _ := Lookup("art-and-design")
	assert.Equal(t, "Art et Design", again.Label)
}
