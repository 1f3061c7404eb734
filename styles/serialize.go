package styles

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/beevik/etree"
)

// WriteTo writes all rules in cascade order, one rule per line.
func (r *Registry) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	for _, sr := range r.Serialize() {
		n, err := bw.WriteString(sr.Rule)
		total += int64(n)
		if err != nil {
			return total, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return total, err
		}
		total++
	}
	return total, bw.Flush()
}

// String returns all rules in cascade order as CSS text.
func (r *Registry) String() string {
	var sb strings.Builder
	_, _ = r.WriteTo(&sb)
	return sb.String()
}

// MediaAttribute is set on media bucket style elements.
const MediaAttribute = "media"

// StyleElements renders registry content as XHTML <style> elements, one per
// bucket. Media bucket rules are grouped into one element per consecutive
// run of the same condition, which carries it as the media attribute.
func (r *Registry) StyleElements() []*etree.Element {
	var (
		res  []*etree.Element
		cur  *etree.Element
		last = Bucket(-1)
		cond string
		body []string
	)
	flush := func() {
		if cur != nil {
			cur.SetText("\n" + strings.Join(body, "\n") + "\n")
			res = append(res, cur)
		}
		cur, body = nil, nil
	}

	for _, sr := range r.Serialize() {
		if sr.Bucket != last || (sr.Bucket == BucketMedia && sr.Media != cond) {
			flush()
			cur = etree.NewElement("style")
			sheet, _ := r.Stylesheet(sr.Bucket)
			attrs := sheet.Attributes()
			for _, k := range sortedKeys(attrs) {
				cur.CreateAttr(k, attrs[k])
			}
			if sr.Bucket == BucketMedia {
				cur.CreateAttr(MediaAttribute, sr.Media)
			}
			last, cond = sr.Bucket, sr.Media
		}
		body = append(body, sr.Rule)
	}
	flush()
	return res
}

// WriteStyleElements writes XHTML markup of StyleElements.
func (r *Registry) WriteStyleElements(w io.Writer) (int64, error) {
	doc := etree.NewDocument()
	for _, el := range r.StyleElements() {
		doc.AddChild(el)
	}
	doc.Indent(2)
	return doc.WriteTo(w)
}

// ParseStyleElements reads markup produced by WriteStyleElements back into
// stylesheets suitable for Registry.Adopt. Elements without a valid bucket
// attribute are ignored.
func ParseStyleElements(data []byte) (map[Bucket]*MemoryStylesheet, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString("<styles>" + string(data) + "</styles>"); err != nil {
		return nil, fmt.Errorf("unable to parse style elements: %w", err)
	}

	res := make(map[Bucket]*MemoryStylesheet)
	for _, el := range doc.FindElements("//style") {
		b, err := ParseBucket(el.SelectAttrValue(BucketAttribute, ""))
		if err != nil {
			continue
		}

		sheet, ok := res[b]
		if !ok {
			attrs := make(map[string]string, len(el.Attr))
			for _, a := range el.Attr {
				if a.Key == MediaAttribute && a.Space == "" {
					continue
				}
				attrs[a.FullKey()] = a.Value
			}
			sheet = NewMemoryStylesheet(attrs["id"], attrs)
			res[b] = sheet
		}

		for line := range strings.Lines(el.Text()) {
			rule := strings.TrimSpace(line)
			if rule == "" {
				continue
			}
			if _, err := sheet.InsertRule(rule, len(sheet.rules)); err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}

// Hydrate adopts stylesheets parsed from server rendered markup so rules
// already present are not inserted again. Buckets are adopted in cascade
// order.
func (r *Registry) Hydrate(sheets map[Bucket]*MemoryStylesheet) error {
	buckets := make([]Bucket, 0, len(sheets))
	for b := range sheets {
		buckets = append(buckets, b)
	}
	slices.Sort(buckets)
	for _, b := range buckets {
		if err := r.Adopt(b, sheets[b]); err != nil {
			return err
		}
	}
	return nil
}
