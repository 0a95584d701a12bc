package render

import (
	"fmt"
	"strings"
)

// SharePage is the static redirect document for one date, with the social
// card metadata search crawlers and link previews read before following the
// redirect.
type SharePage struct {
	FileName string
	URL      string
	HTML     string
}

// BuildSharePage renders the OG/Twitter-card redirect page for the given
// date. dateCompact is YYYYMMDD, dateDash is YYYY-MM-DD.
func BuildSharePage(baseURL, dateCompact, dateDash string) SharePage {
	base := strings.TrimRight(baseURL, "/")
	shareURL := fmt.Sprintf("%s/share/%s.html", base, dateCompact)
	ogImage := fmt.Sprintf("%s/assets/og/ogp.png?v=%s", base, dateCompact)
	title := fmt.Sprintf("Crypto Market Radar - Daily Picks %s", dateDash)
	description := "Trending, top gainers and alt volume at a glance."

	html := fmt.Sprintf(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>%[1]s</title>

<meta property="og:type" content="website">
<meta property="og:site_name" content="Crypto Market Radar">
<meta property="og:title" content="%[1]s">
<meta property="og:description" content="%[2]s">
<meta property="og:url" content="%[3]s">
<meta property="og:image" content="%[4]s">
<meta property="og:image:width" content="1200">
<meta property="og:image:height" content="630">

<meta name="twitter:card" content="summary_large_image">
<meta name="twitter:title" content="%[1]s">
<meta name="twitter:description" content="%[2]s">
<meta name="twitter:image" content="%[4]s">

<meta http-equiv="refresh" content="0;url=%[5]s/?v=%[6]s">
</head>
<body></body>
</html>
`, title, description, shareURL, ogImage, base, dateCompact)

	return SharePage{
		FileName: dateCompact + ".html",
		URL:      shareURL,
		HTML:     html,
	}
}
