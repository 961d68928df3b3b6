package generator

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/webgenlabs/webgen/pkg/errors"
	"github.com/webgenlabs/webgen/pkg/types"
)

const sitemapName = "sitemap.xml"

// writeSitemap builds a sitemap over the .html outputs and writes it
// into the output dir. It returns the sitemap's relative path.
func writeSitemap(fsys types.FS, outputDir, baseURL string, files []string, ts time.Time) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", "http://www.sitemaps.org/schemas/sitemap/0.9")

	base := strings.TrimSuffix(baseURL, "/")
	lastmod := ts.Format("2006-01-02")
	for _, rel := range files {
		if !strings.HasSuffix(rel, ".html") {
			continue
		}
		url := urlset.CreateElement("url")
		url.CreateElement("loc").SetText(base + "/" + filepath.ToSlash(rel))
		url.CreateElement("lastmod").SetText(lastmod)
	}

	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "serializing sitemap")
	}
	path := filepath.Join(outputDir, sitemapName)
	if err := fsys.WriteFile(path, []byte(out), 0o644); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "writing %s", path)
	}
	return sitemapName, nil
}
