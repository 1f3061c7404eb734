package styles_test

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"atomcss/common"
	"atomcss/styles"
)

func classesOf(t *testing.T, r *styles.Renderer, prop string, value any, ctx styles.Context, mirrored bool) styles.Classes {
	t.Helper()
	d, err := styles.NewDeclaration(prop, value, ctx)
	if err != nil {
		t.Fatalf("NewDeclaration(%q, %v): %v", prop, value, err)
	}
	return r.Hasher().ClassNames(r.Hasher().Hash(d), mirrored)
}

func bucketsOf(rules []styles.SerializedRule) []styles.Bucket {
	var res []styles.Bucket
	for _, sr := range rules {
		res = append(res, sr.Bucket)
	}
	return res
}

func rulesOf(r *styles.Renderer, b styles.Bucket) []string {
	sheet, ok := r.Registry().Stylesheet(b)
	if !ok {
		return nil
	}
	return sheet.CSSRules()
}

func TestResolve_HoverScenario(t *testing.T) {
	r := styles.NewRenderer(zap.NewNop())

	m, err := r.Resolve(styles.StylesBySlot{
		"root": {
			"color":  "red",
			":hover": styles.Style{"color": "blue"},
		},
	}, common.DirectionLtr)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if len(m.Slots["root"]) != 2 {
		t.Fatalf("expected 2 classes for root, got %v", m.Slots["root"])
	}

	red := classesOf(t, r, "color", "red", styles.Context{}, false)
	blue := classesOf(t, r, "color", "blue", styles.Context{Selectors: []string{"&:hover"}}, false)

	rules := r.Registry().Serialize()
	want := []styles.SerializedRule{
		{Bucket: styles.BucketDefault, Rule: "." + red.LTR + "{color:red;}"},
		{Bucket: styles.BucketHover, Rule: "." + blue.LTR + ":hover{color:blue;}"},
	}
	if !slices.Equal(rules, want) {
		t.Errorf("unexpected rules:\n got %v\nwant %v", rules, want)
	}

	names := []string{red.LTR, blue.LTR}
	slices.Sort(names)
	if got := m.ClassName("root"); got != strings.Join(names, " ") {
		t.Errorf("ClassName() = %q, want %q", got, strings.Join(names, " "))
	}
}

func TestResolve_Idempotent(t *testing.T) {
	r := styles.NewRenderer(zap.NewNop())
	in := styles.StylesBySlot{
		"root": {
			"display":                   "flex",
			"paddingLeft":               "4px",
			":focus":                    styles.Style{"outlineColor": "red"},
			"@media (min-width: 600px)": styles.Style{"display": "none"},
		},
	}

	first, err := r.Resolve(in, common.DirectionLtr)
	if err != nil {
		t.Fatal(err)
	}
	before := r.Registry().Serialize()

	second, err := r.Resolve(in, common.DirectionLtr)
	if err != nil {
		t.Fatal(err)
	}
	if after := r.Registry().Serialize(); !slices.Equal(before, after) {
		t.Errorf("second resolve inserted rules:\n before %v\n after %v", before, after)
	}
	if first.ClassName("root") != second.ClassName("root") {
		t.Errorf("class names differ: %q vs %q", first.ClassName("root"), second.ClassName("root"))
	}
}

func TestResolve_SharedAcrossSlots(t *testing.T) {
	r := styles.NewRenderer(zap.NewNop())

	m, err := r.Resolve(styles.StylesBySlot{
		"root":  {"color": "red"},
		"label": {"color": "RED"},
		"icon":  {"color": "red", "fontFamily": "Arial"},
	}, common.DirectionLtr)
	if err != nil {
		t.Fatal(err)
	}

	if m.ClassName("root") != m.ClassName("label") {
		t.Errorf("equal declarations got different classes: %q vs %q", m.ClassName("root"), m.ClassName("label"))
	}
	if !strings.Contains(m.ClassName("icon"), m.ClassName("root")) {
		t.Errorf("icon classes %q do not contain %q", m.ClassName("icon"), m.ClassName("root"))
	}
	if n := r.Registry().Len(styles.BucketDefault); n != 2 {
		t.Errorf("expected 2 rules, got %d", n)
	}
	if n := r.Cache().Len(); n != 2 {
		t.Errorf("expected 2 cache records, got %d", n)
	}
}

func TestResolve_PseudoClassOrder(t *testing.T) {
	r := styles.NewRenderer(zap.NewNop())

	// every slot is resolved separately so arrival order is the reverse of
	// the cascade order
	for _, pseudo := range []string{":active", ":hover", ":focus-visible", ":focus", ":focus-within", ":visited", ":link"} {
		if _, err := r.Resolve(styles.StylesBySlot{"root": {pseudo: styles.Style{"color": "red"}}}, common.DirectionLtr); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := r.Resolve(styles.StylesBySlot{"root": {"color": "red"}}, common.DirectionLtr); err != nil {
		t.Fatal(err)
	}

	want := []styles.Bucket{
		styles.BucketDefault,
		styles.BucketLink,
		styles.BucketVisited,
		styles.BucketFocusWithin,
		styles.BucketFocus,
		styles.BucketFocusVisible,
		styles.BucketHover,
		styles.BucketActive,
	}
	if got := bucketsOf(r.Registry().Serialize()); !slices.Equal(got, want) {
		t.Errorf("unexpected bucket sequence:\n got %v\nwant %v", got, want)
	}
}

func TestResolve_UnknownSelectorDefault(t *testing.T) {
	r := styles.NewRenderer(zap.NewNop())

	_, err := r.Resolve(styles.StylesBySlot{"root": {
		":nth-child(2)": styles.Style{"color": "red"},
		"> span":        styles.Style{"color": "red"},
	}}, common.DirectionLtr)
	if err != nil {
		t.Fatal(err)
	}
	if got := bucketsOf(r.Registry().Serialize()); !slices.Equal(got, []styles.Bucket{styles.BucketDefault, styles.BucketDefault}) {
		t.Errorf("unexpected buckets %v", got)
	}
	for _, rule := range rulesOf(r, styles.BucketDefault) {
		if !strings.HasSuffix(rule, ":nth-child(2){color:red;}") && !strings.HasSuffix(rule, " > span{color:red;}") {
			t.Errorf("unexpected rule %q", rule)
		}
	}
}

func TestResolve_MediaOrder(t *testing.T) {
	r := styles.NewRenderer(zap.NewNop())

	for _, cond := range []string{"@media (min-width: 600px)", "@media (max-width: 400px)", "@media (min-width: 300px)"} {
		if _, err := r.Resolve(styles.StylesBySlot{"root": {cond: styles.Style{"color": "red"}}}, common.DirectionLtr); err != nil {
			t.Fatal(err)
		}
	}

	var got []string
	for _, sr := range r.Registry().Serialize() {
		got = append(got, sr.Media)
	}
	want := []string{"(min-width: 300px)", "(min-width: 600px)", "(max-width: 400px)"}
	if !slices.Equal(got, want) {
		t.Errorf("unexpected media order:\n got %q\nwant %q", got, want)
	}
}

func TestResolve_NestedContexts(t *testing.T) {
	r := styles.NewRenderer(zap.NewNop())

	_, err := r.Resolve(styles.StylesBySlot{"root": {
		"@media (min-width: 600px)": styles.Style{
			":hover": styles.Style{"color": "red"},
		},
		"@supports (display: grid)":     styles.Style{"display": "grid"},
		"@layer base":                   styles.Style{"margin": "0"},
		"@container (min-width: 400px)": styles.Style{"width": "50%"},
	}}, common.DirectionLtr)
	if err != nil {
		t.Fatal(err)
	}

	hover := classesOf(t, r, "color", "red", styles.Context{Selectors: []string{"&:hover"}, Media: "(min-width: 600px)"}, false)
	if got, want := rulesOf(r, styles.BucketMedia), []string{"@media (min-width: 600px){." + hover.LTR + ":hover{color:red;}}"}; !slices.Equal(got, want) {
		t.Errorf("unexpected media rules:\n got %q\nwant %q", got, want)
	}

	atRules := rulesOf(r, styles.BucketAtRule)
	if len(atRules) != 3 {
		t.Fatalf("expected 3 at-rules, got %q", atRules)
	}
	for _, prefix := range []string{"@supports (display: grid){.", "@layer base{.", "@container (min-width: 400px){."} {
		if !slices.ContainsFunc(atRules, func(s string) bool { return strings.HasPrefix(s, prefix) }) {
			t.Errorf("no rule starting with %q in %q", prefix, atRules)
		}
	}
}

func TestResolve_FallbackValues(t *testing.T) {
	r := styles.NewRenderer(zap.NewNop())

	if _, err := r.Resolve(styles.StylesBySlot{"root": {"display": []any{"-webkit-box", "flex"}}}, common.DirectionLtr); err != nil {
		t.Fatal(err)
	}
	cls := classesOf(t, r, "display", []string{"-webkit-box", "flex"}, styles.Context{}, false)
	want := []string{"." + cls.LTR + "{display:-webkit-box;display:flex;}"}
	if got := rulesOf(r, styles.BucketDefault); !slices.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolve_Direction(t *testing.T) {
	r := styles.NewRenderer(zap.NewNop())
	in := styles.StylesBySlot{"root": {"paddingLeft": "10px", "color": "red"}}

	ltr, err := r.Resolve(in, common.DirectionLtr)
	if err != nil {
		t.Fatal(err)
	}
	pad := classesOf(t, r, "paddingLeft", "10px", styles.Context{}, true)
	color := classesOf(t, r, "color", "red", styles.Context{}, false)

	want := []string{
		"." + color.LTR + "{color:red;}",
		"." + pad.LTR + "{padding-left:10px;}",
		"." + pad.RTL + "{padding-right:10px;}",
	}
	got := rulesOf(r, styles.BucketDefault)
	slices.Sort(got)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("unexpected rules:\n got %q\nwant %q", got, want)
	}

	rtl, err := r.Resolve(in, common.DirectionRtl)
	if err != nil {
		t.Fatal(err)
	}
	if n := r.Registry().Len(styles.BucketDefault); n != 3 {
		t.Errorf("rtl resolve inserted rules, %d in bucket", n)
	}
	if pad.LTR == pad.RTL {
		t.Fatalf("expected distinct class names, got %q", pad.LTR)
	}
	if !strings.Contains(ltr.ClassName("root"), pad.LTR) || strings.Contains(ltr.ClassName("root"), pad.RTL) {
		t.Errorf("unexpected ltr class names %q", ltr.ClassName("root"))
	}
	if !strings.Contains(rtl.ClassName("root"), pad.RTL) || strings.Contains(rtl.ClassName("root"), pad.LTR) {
		t.Errorf("unexpected rtl class names %q", rtl.ClassName("root"))
	}
	if !strings.Contains(rtl.ClassName("root"), color.LTR) {
		t.Errorf("direction independent class missing in %q", rtl.ClassName("root"))
	}
}

func TestResolve_NoFlipDistinct(t *testing.T) {
	r := styles.NewRenderer(zap.NewNop())
	in := styles.StylesBySlot{
		"a": {"left": "10px /* @noflip */"},
		"b": {"left": "10px"},
	}

	m, err := r.Resolve(in, common.DirectionRtl)
	if err != nil {
		t.Fatal(err)
	}
	fixed := classesOf(t, r, "left", "10px /* @noflip */", styles.Context{}, false)
	flip := classesOf(t, r, "left", "10px", styles.Context{}, true)
	if fixed.LTR == flip.LTR {
		t.Fatalf("noflip declaration shares class %q", fixed.LTR)
	}
	if got := m.ClassName("a"); got != fixed.LTR {
		t.Errorf("unexpected class of a %q, want %q", got, fixed.LTR)
	}
	if got := m.ClassName("b"); got != flip.RTL {
		t.Errorf("unexpected class of b %q, want %q", got, flip.RTL)
	}

	want := []string{
		"." + fixed.LTR + "{left:10px;}",
		"." + flip.LTR + "{left:10px;}",
		"." + flip.RTL + "{right:10px;}",
	}
	got := rulesOf(r, styles.BucketDefault)
	slices.Sort(got)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("unexpected rules:\n got %q\nwant %q", got, want)
	}

	// same result whichever slot comes first
	r2 := styles.NewRenderer(zap.NewNop())
	if _, err := r2.Resolve(styles.StylesBySlot{"b": in["b"]}, common.DirectionRtl); err != nil {
		t.Fatal(err)
	}
	m2, err := r2.Resolve(styles.StylesBySlot{"a": in["a"]}, common.DirectionRtl)
	if err != nil {
		t.Fatal(err)
	}
	if m2.ClassName("a") != fixed.LTR {
		t.Errorf("class of a depends on resolve order: %q", m2.ClassName("a"))
	}
}

func TestResolve_RtlFirst(t *testing.T) {
	r := styles.NewRenderer(zap.NewNop())

	m, err := r.Resolve(styles.StylesBySlot{"root": {"marginRight": "1px"}}, common.DirectionRtl)
	if err != nil {
		t.Fatal(err)
	}
	cls := classesOf(t, r, "marginRight", "1px", styles.Context{}, true)
	if m.ClassName("root") != cls.RTL {
		t.Errorf("ClassName() = %q, want %q", m.ClassName("root"), cls.RTL)
	}
	if n := r.Registry().Len(styles.BucketDefault); n != 2 {
		t.Errorf("expected both variants inserted, got %d rules", n)
	}
}

func TestResolve_Errors(t *testing.T) {
	obs := &recorder{}
	r := styles.NewRenderer(zap.NewNop(), styles.WithObserver(obs))

	m, err := r.Resolve(styles.StylesBySlot{"root": {
		"color":      []any{},
		"width":      struct{}{},
		"height":     "1px",
		"margin":     nil,
		"@font-face": styles.Style{"fontFamily": "x"},
		":hover":     styles.Style{"padding": "1px;color:red"},
	}}, common.DirectionLtr)
	if err == nil {
		t.Fatal("expected error")
	}

	errs := multierr.Errors(err)
	if len(errs) != 4 {
		t.Fatalf("expected 4 errors, got %d: %v", len(errs), err)
	}
	for _, e := range errs {
		var de *styles.DeclarationError
		if !errors.As(e, &de) {
			t.Errorf("error %v is not a DeclarationError", e)
			continue
		}
		if de.Slot != "root" {
			t.Errorf("unexpected slot %q", de.Slot)
		}
	}
	if !errors.Is(err, styles.ErrUnsupportedAtRule) {
		t.Errorf("expected unsupported at-rule error in %v", err)
	}
	if !errors.Is(err, styles.ErrMalformedDeclaration) {
		t.Errorf("expected malformed declaration error in %v", err)
	}
	if !strings.Contains(err.Error(), "root > :hover > padding") {
		t.Errorf("error does not name the declaration path: %v", err)
	}

	height := classesOf(t, r, "height", "1px", styles.Context{}, false)
	if m.ClassName("root") != height.LTR {
		t.Errorf("valid declarations must be resolved, got %q", m.ClassName("root"))
	}
	if got := rulesOf(r, styles.BucketDefault); len(got) != 1 {
		t.Errorf("unexpected rules %q", got)
	}
	if obs.failed[styles.FailureMalformed] != 3 || obs.failed[styles.FailureAtRule] != 1 {
		t.Errorf("unexpected failures %v", obs.failed)
	}
}

type flakySheet struct {
	*styles.MemoryStylesheet
	refuse *atomic.Bool
}

func (s *flakySheet) InsertRule(rule string, index int) (int, error) {
	if s.refuse.Load() {
		return 0, errors.New("quota exceeded")
	}
	return s.MemoryStylesheet.InsertRule(rule, index)
}

func TestResolve_HostRefusal(t *testing.T) {
	var refuse atomic.Bool
	refuse.Store(true)
	factory := func(_ styles.Bucket, name string, attrs map[string]string) (styles.Stylesheet, error) {
		return &flakySheet{MemoryStylesheet: styles.NewMemoryStylesheet(name, attrs), refuse: &refuse}, nil
	}
	obs := &recorder{}
	r := styles.NewRenderer(zap.NewNop(), styles.WithStylesheetFactory(factory), styles.WithObserver(obs))
	in := styles.StylesBySlot{"root": {"left": "0"}}

	m, err := r.Resolve(in, common.DirectionLtr)
	if !errors.Is(err, styles.ErrInsertRejected) {
		t.Fatalf("expected ErrInsertRejected, got %v", err)
	}
	if m.ClassName("root") != "" {
		t.Errorf("unexpected classes %q", m.ClassName("root"))
	}
	if r.Cache().Len() != 0 || r.Registry().Len(styles.BucketDefault) != 0 {
		t.Error("refused insertion left state behind")
	}
	if obs.failed[styles.FailureRejected] != 1 {
		t.Errorf("unexpected failures %v", obs.failed)
	}

	// the reservation was released so the next attempt inserts
	refuse.Store(false)
	m, err = r.Resolve(in, common.DirectionLtr)
	if err != nil {
		t.Fatal(err)
	}
	if m.ClassName("root") == "" || r.Registry().Len(styles.BucketDefault) != 2 {
		t.Errorf("retry did not insert rules: %q", m.ClassName("root"))
	}
	if obs.inserted[styles.BucketDefault] != 2 {
		t.Errorf("unexpected inserted count %v", obs.inserted)
	}
}

func TestResolve_Concurrent(t *testing.T) {
	r := styles.NewRenderer(zap.NewNop())
	in := styles.StylesBySlot{
		"root": {
			"color":                     "red",
			"marginLeft":                "2px",
			":hover":                    styles.Style{"color": "blue"},
			"@media (min-width: 100px)": styles.Style{"color": "green"},
		},
	}

	const workers = 16
	var (
		wg      sync.WaitGroup
		results = make([]string, workers)
		errs    = make([]error, workers)
	)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := r.Resolve(in, common.DirectionLtr)
			results[i], errs[i] = m.ClassName("root"), err
		}()
	}
	wg.Wait()

	for i := range workers {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if results[i] != results[0] {
			t.Errorf("worker %d got %q, want %q", i, results[i], results[0])
		}
	}

	rules := r.Registry().Serialize()
	if len(rules) != 5 {
		t.Errorf("expected 5 rules, got %d: %v", len(rules), rules)
	}
	seen := make(map[string]bool)
	for _, sr := range rules {
		if seen[sr.Rule] {
			t.Errorf("rule %q inserted twice", sr.Rule)
		}
		seen[sr.Rule] = true
	}
}

func TestResolve_OrderIndependent(t *testing.T) {
	slots := []styles.StylesBySlot{
		{"a": {"color": "red", ":hover": styles.Style{"color": "blue"}}},
		{"b": {"@media (min-width: 900px)": styles.Style{"color": "red"}, ":active": styles.Style{"color": "red"}}},
		{"c": {"@media (min-width: 300px)": styles.Style{"display": "none"}, "display": "block"}},
	}

	resolve := func(order []int) *styles.Renderer {
		r := styles.NewRenderer(zap.NewNop())
		for _, i := range order {
			if _, err := r.Resolve(slots[i], common.DirectionLtr); err != nil {
				t.Fatal(err)
			}
		}
		return r
	}

	r1 := resolve([]int{0, 1, 2})
	r2 := resolve([]int{2, 1, 0})

	if b1, b2 := bucketsOf(r1.Registry().Serialize()), bucketsOf(r2.Registry().Serialize()); !slices.Equal(b1, b2) {
		t.Errorf("bucket sequences differ: %v vs %v", b1, b2)
	}
	for _, b := range styles.Buckets() {
		got1, got2 := rulesOf(r1, b), rulesOf(r2, b)
		if b != styles.BucketMedia {
			slices.Sort(got1)
			slices.Sort(got2)
		}
		if !slices.Equal(got1, got2) {
			t.Errorf("bucket %s differs:\n %q\n %q", b, got1, got2)
		}
	}
}

func TestResolve_Keyframes(t *testing.T) {
	r := styles.NewRenderer(zap.NewNop())
	fade := styles.Keyframes{
		"from": {"opacity": 0},
		"to":   {"opacity": 1},
	}

	m, err := r.Resolve(styles.StylesBySlot{"root": {
		"animationName":             fade,
		"@media (min-width: 100px)": styles.Style{"animationName": fade},
	}}, common.DirectionLtr)
	if err != nil {
		t.Fatal(err)
	}

	name, rtlName, err := r.InsertKeyframes(map[string]any{
		"to":   styles.Style{"opacity": 1},
		"from": styles.Style{"opacity": 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	if name != rtlName {
		t.Errorf("direction independent keyframes got two names %q and %q", name, rtlName)
	}

	want := []string{"@keyframes " + name + "{from{opacity:0;}to{opacity:1;}}"}
	if got := rulesOf(r, styles.BucketKeyframes); !slices.Equal(got, want) {
		t.Errorf("unexpected keyframes:\n got %q\nwant %q", got, want)
	}

	cls := classesOf(t, r, "animationName", name, styles.Context{}, false)
	if got := rulesOf(r, styles.BucketDefault); !slices.Equal(got, []string{"." + cls.LTR + "{animation-name:" + name + ";}"}) {
		t.Errorf("unexpected default rules %q", got)
	}
	if got := rulesOf(r, styles.BucketMedia); len(got) != 1 || !strings.Contains(got[0], "animation-name:"+name+";") {
		t.Errorf("unexpected media rules %q", got)
	}
	if len(m.Slots["root"]) != 2 {
		t.Errorf("expected 2 classes, got %v", m.Slots["root"])
	}

	// keyframes precede every rule using them
	rules := r.Registry().Serialize()
	if rules[0].Bucket != styles.BucketDefault || rules[1].Bucket != styles.BucketKeyframes || rules[2].Bucket != styles.BucketMedia {
		t.Errorf("unexpected bucket sequence %v", bucketsOf(rules))
	}
}

func TestResolve_KeyframesDirection(t *testing.T) {
	r := styles.NewRenderer(zap.NewNop())
	slide := styles.Keyframes{
		"from": {"left": "0"},
		"to":   {"left": "10px"},
	}

	m, err := r.Resolve(styles.StylesBySlot{"root": {"animationName": []any{slide, "pulse"}}}, common.DirectionRtl)
	if err != nil {
		t.Fatal(err)
	}

	ltrName, rtlName, err := r.InsertKeyframes(map[string]any{
		"from": styles.Style{"left": "0"},
		"to":   styles.Style{"left": "10px"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if ltrName == rtlName {
		t.Fatal("expected distinct names for mirrored keyframes")
	}

	want := []string{
		"@keyframes " + ltrName + "{from{left:0;}to{left:10px;}}",
		"@keyframes " + rtlName + "{from{right:0;}to{right:10px;}}",
	}
	if got := rulesOf(r, styles.BucketKeyframes); !slices.Equal(got, want) {
		t.Errorf("unexpected keyframes:\n got %q\nwant %q", got, want)
	}

	rules := rulesOf(r, styles.BucketDefault)
	if len(rules) != 2 {
		t.Fatalf("expected both animation-name variants, got %q", rules)
	}
	cls := m.ClassName("root")
	var rtlRule string
	for _, rule := range rules {
		if strings.HasPrefix(rule, "."+cls+"{") {
			rtlRule = rule
		}
	}
	if rtlRule != "."+cls+"{animation-name:"+rtlName+",pulse;}" {
		t.Errorf("unexpected rtl rule %q in %q", rtlRule, rules)
	}
}

func TestResolve_KeyframesNoFlip(t *testing.T) {
	r := styles.NewRenderer(zap.NewNop())
	fixed := styles.Keyframes{
		"from": {"left": "0 /* @noflip */"},
		"to":   {"left": "10px"},
	}
	plain := styles.Keyframes{
		"from": {"left": "0"},
		"to":   {"left": "10px"},
	}

	m, err := r.Resolve(styles.StylesBySlot{
		"a": {"animationName": fixed},
		"b": {"animationName": plain},
	}, common.DirectionRtl)
	if err != nil {
		t.Fatal(err)
	}
	if m.ClassName("a") == m.ClassName("b") {
		t.Fatalf("keyframes differing only by noflip share class %q", m.ClassName("a"))
	}

	var bodies []string
	for _, rule := range rulesOf(r, styles.BucketKeyframes) {
		_, body, _ := strings.Cut(rule, "{")
		bodies = append(bodies, body)
	}
	want := []string{
		"from{left:0;}to{left:10px;}}",
		"from{left:0;}to{right:10px;}}",
		"from{right:0;}to{right:10px;}}",
	}
	slices.Sort(bodies)
	if !slices.Equal(bodies, want) {
		t.Errorf("unexpected keyframes bodies:\n got %q\nwant %q", bodies, want)
	}
}

func TestResolve_BadKeyframes(t *testing.T) {
	r := styles.NewRenderer(zap.NewNop())

	_, err := r.Resolve(styles.StylesBySlot{"root": {
		"animationName": styles.Keyframes{"sometimes": {"opacity": 0}},
	}}, common.DirectionLtr)
	if !errors.Is(err, styles.ErrMalformedDeclaration) {
		t.Errorf("expected malformed declaration, got %v", err)
	}
	if r.Registry().Len(styles.BucketKeyframes) != 0 || r.Registry().Len(styles.BucketDefault) != 0 {
		t.Error("rules inserted for invalid keyframes")
	}
}

type recorder struct {
	mu       sync.Mutex
	inserted map[styles.Bucket]int
	lookups  map[styles.LookupResult]int
	failed   map[string]int
}

func (o *recorder) RulesInserted(b styles.Bucket, n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inserted == nil {
		o.inserted = make(map[styles.Bucket]int)
	}
	o.inserted[b] += n
}

func (o *recorder) CacheLookup(res styles.LookupResult) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.lookups == nil {
		o.lookups = make(map[styles.LookupResult]int)
	}
	o.lookups[res]++
}

func (o *recorder) DeclarationFailed(kind string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.failed == nil {
		o.failed = make(map[string]int)
	}
	o.failed[kind]++
}
