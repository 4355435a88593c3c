package label

import (
	"net/url"
	"strconv"
)

const (
	paginationEndSize = 1
	paginationMidSize = 2

	prevLabel = "« Previous"
	nextLabel = "Next »"
	dotsLabel = "…"
)

// PageLink is one element of the listing's pagination bar
type PageLink struct {
	Label   string
	URL     string
	Current bool
	Dots    bool
	Rel     string
}

// paginate builds the pagination bar in the shape WordPress' paginate_links
// produces: previous/next arrows, one page at each end, two around the
// current page and a dots marker for every collapsed run.
func paginate(basePath, query string, current, total int) []PageLink {
	if total < 2 {
		return nil
	}
	if current < 1 {
		current = 1
	}

	link := func(n int) string { return pageURL(basePath, query, n) }

	var links []PageLink
	if current > 1 {
		links = append(links, PageLink{Label: prevLabel, URL: link(current - 1), Rel: "prev"})
	}

	dots := false
	for n := 1; n <= total; n++ {
		switch {
		case n == current:
			links = append(links, PageLink{Label: strconv.Itoa(n), Current: true})
			dots = true
		case n <= paginationEndSize ||
			(n >= current-paginationMidSize && n <= current+paginationMidSize) ||
			n > total-paginationEndSize:
			links = append(links, PageLink{Label: strconv.Itoa(n), URL: link(n)})
			dots = true
		case dots:
			links = append(links, PageLink{Label: dotsLabel, Dots: true})
			dots = false
		}
	}

	if current < total {
		links = append(links, PageLink{Label: nextLabel, URL: link(current + 1), Rel: "next"})
	}
	return links
}

// pageURL links to page n of the listing, carrying the search term along
func pageURL(basePath, query string, n int) string {
	v := url.Values{}
	v.Set("paged", strconv.Itoa(n))
	if query != "" {
		v.Set("product_search", query)
	}
	return basePath + "?" + v.Encode()
}
