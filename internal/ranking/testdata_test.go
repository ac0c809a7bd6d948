package ranking

import (
	"fmt"
	"strings"
)

// leagueTablePage renders a page shaped like the upstream league table: a
// decoy first item, then the item holding the names, each followed by the
// course link label.
func leagueTablePage(names ...string) string {
	var entries strings.Builder
	for i, n := range names {
		fmt.Fprintf(&entries, "<div class=\"rank\"><span>%d</span>\n  <a href=\"#\"> %s </a>\n</div><a class=\"btn\">VIEW COURSES</a>\n", i+1, n)
	}
	return `<!DOCTYPE html><html><head><title>League table</title></head><body>
<ul>
  <li class="swiper-slide uni_nam lt_list2">Header</li>
  <li class="swiper-slide uni_nam lt_list2">` + entries.String() + `</li>
  <li class="swiper-slide uni_nam">Not this one</li>
</ul>
</body></html>`
}
