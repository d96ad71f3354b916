package calculator

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cast"

	"github.com/dmitrymomot/calckit/pkg/validator"
)

// MaxNestingPieces caps the number of part instances one nesting run places.
const MaxNestingPieces = 10000

// Part is a rectangular part to cut Quantity times.
type Part struct {
	Label    string  `json:"label"`
	Width    float64 `json:"width"`  // mm
	Height   float64 `json:"height"` // mm
	Quantity int     `json:"quantity"`
}

// NestingInput describes the stock sheet and the parts to place on it.
type NestingInput struct {
	SheetWidth    float64 `json:"sheetWidth"`  // mm
	SheetHeight   float64 `json:"sheetHeight"` // mm
	Spacing       float64 `json:"spacing"`     // mm between parts, at least the kerf
	Margin        float64 `json:"margin"`      // mm kept free along every sheet edge
	AllowRotation bool    `json:"allowRotation"`
	Parts         []Part  `json:"parts"`
}

// Placement is one part instance on a sheet. X and Y are measured from the
// sheet corner and include the margin.
type Placement struct {
	Label   string  `json:"label"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Rotated bool    `json:"rotated"`
}

// Sheet is one stock sheet and the parts placed on it.
type Sheet struct {
	Index       int         `json:"index"`
	Placements  []Placement `json:"placements"`
	Utilization float64     `json:"utilization"` // % of sheet area covered by parts
}

// Unplaced counts part instances that do not fit on an empty sheet.
type Unplaced struct {
	Label    string `json:"label"`
	Quantity int    `json:"quantity"`
}

// NestingResult is the sheet layout produced by Nest.
type NestingResult struct {
	SheetCount  int        `json:"sheetCount"`
	Sheets      []Sheet    `json:"sheets"`
	Placed      int        `json:"placed"`
	Utilization float64    `json:"utilization"` // % over all used sheets
	Unplaced    []Unplaced `json:"unplaced"`
}

type piece struct {
	label   string
	w, h    float64
	rotated bool
}

type shelf struct {
	y, height, used float64
}

type sheetState struct {
	shelves    []shelf
	top        float64 // first free y above the last shelf
	placements []Placement
}

// Nest lays parts out on as few sheets as the shelf heuristic manages:
// pieces are sorted by decreasing height and each goes on the first shelf of
// the first sheet with room, opening a new shelf or sheet when none fits.
func Nest(in NestingInput) (NestingResult, error) {
	if in.SheetWidth <= 0 || in.SheetHeight <= 0 {
		return NestingResult{}, fmt.Errorf("%w: sheet dimensions must be positive", ErrInvalidInput)
	}
	if in.Spacing < 0 || in.Margin < 0 {
		return NestingResult{}, fmt.Errorf("%w: spacing and margin cannot be negative", ErrInvalidInput)
	}
	usableW := in.SheetWidth - 2*in.Margin
	usableH := in.SheetHeight - 2*in.Margin
	if usableW <= 0 || usableH <= 0 {
		return NestingResult{}, fmt.Errorf("%w: margin leaves no usable sheet area", ErrInvalidInput)
	}

	pieces, unplaced, err := expandParts(in, usableW, usableH)
	if err != nil {
		return NestingResult{}, err
	}

	var sheets []*sheetState
	for _, p := range pieces {
		if placeOnShelves(sheets, p, in, usableW) {
			continue
		}
		if openShelf(sheets, p, in, usableW, usableH) {
			continue
		}
		s := &sheetState{}
		sheets = append(sheets, s)
		openShelf([]*sheetState{s}, p, in, usableW, usableH)
	}

	return summarize(sheets, unplaced, in), nil
}

// expandParts turns parts into single pieces sorted by decreasing height.
// With rotation allowed every piece is laid flat (height ≤ width) when that
// orientation fits. Parts that fit no orientation are reported as unplaced.
func expandParts(in NestingInput, usableW, usableH float64) ([]piece, []Unplaced, error) {
	var (
		pieces   []piece
		unplaced []Unplaced
		total    int
	)
	for i, p := range in.Parts {
		if p.Width <= 0 || p.Height <= 0 || p.Quantity < 1 {
			return nil, nil, fmt.Errorf("%w: part %d needs positive width, height and quantity", ErrInvalidInput, i)
		}
		total += p.Quantity
		if total > MaxNestingPieces {
			return nil, nil, fmt.Errorf("%w: more than %d pieces", ErrInvalidInput, MaxNestingPieces)
		}

		label := p.Label
		if label == "" {
			label = fmt.Sprintf("part-%d", i+1)
		}
		w, h, ok := orient(p.Width, p.Height, usableW, usableH, in.AllowRotation)
		if !ok {
			unplaced = append(unplaced, Unplaced{Label: label, Quantity: p.Quantity})
			continue
		}
		for range p.Quantity {
			pieces = append(pieces, piece{label: label, w: w, h: h, rotated: w != p.Width})
		}
	}

	sort.SliceStable(pieces, func(i, j int) bool {
		if pieces[i].h != pieces[j].h {
			return pieces[i].h > pieces[j].h
		}
		return pieces[i].w > pieces[j].w
	})
	return pieces, unplaced, nil
}

func orient(w, h, usableW, usableH float64, rotate bool) (float64, float64, bool) {
	fits := func(w, h float64) bool { return w <= usableW && h <= usableH }
	if rotate && h > w && fits(h, w) {
		return h, w, true
	}
	if fits(w, h) {
		return w, h, true
	}
	if rotate && fits(h, w) {
		return h, w, true
	}
	return 0, 0, false
}

// placeOnShelves puts p on the first existing shelf with room, trying the
// rotated orientation when allowed.
func placeOnShelves(sheets []*sheetState, p piece, in NestingInput, usableW float64) bool {
	for _, s := range sheets {
		for i := range s.shelves {
			sh := &s.shelves[i]
			x := sh.used
			if x > 0 {
				x += in.Spacing
			}
			for _, o := range orientations(p, in.AllowRotation) {
				if o.h <= sh.height && x+o.w <= usableW {
					s.place(o, in.Margin+x, in.Margin+sh.y)
					sh.used = x + o.w
					return true
				}
			}
		}
	}
	return false
}

// openShelf starts a new shelf for p on the first sheet with enough height
// left above its last shelf.
func openShelf(sheets []*sheetState, p piece, in NestingInput, usableW, usableH float64) bool {
	for _, s := range sheets {
		y := s.top
		if len(s.shelves) > 0 {
			y += in.Spacing
		}
		if y+p.h > usableH || p.w > usableW {
			continue
		}
		s.shelves = append(s.shelves, shelf{y: y, height: p.h, used: p.w})
		s.top = y + p.h
		s.place(p, in.Margin, in.Margin+y)
		return true
	}
	return false
}

func orientations(p piece, rotate bool) []piece {
	if !rotate || p.w == p.h {
		return []piece{p}
	}
	return []piece{p, {label: p.label, w: p.h, h: p.w, rotated: !p.rotated}}
}

func (s *sheetState) place(p piece, x, y float64) {
	s.placements = append(s.placements, Placement{
		Label:   p.label,
		X:       x,
		Y:       y,
		Width:   p.w,
		Height:  p.h,
		Rotated: p.rotated,
	})
}

func summarize(states []*sheetState, unplaced []Unplaced, in NestingInput) NestingResult {
	sheetArea := in.SheetWidth * in.SheetHeight
	res := NestingResult{
		SheetCount: len(states),
		Sheets:     make([]Sheet, 0, len(states)),
		Unplaced:   unplaced,
	}
	if res.Unplaced == nil {
		res.Unplaced = []Unplaced{}
	}

	var covered float64
	for i, s := range states {
		var area float64
		for _, p := range s.placements {
			area += p.Width * p.Height
		}
		covered += area
		res.Placed += len(s.placements)
		res.Sheets = append(res.Sheets, Sheet{
			Index:       i + 1,
			Placements:  s.placements,
			Utilization: area / sheetArea * 100,
		})
	}
	if len(states) > 0 {
		res.Utilization = covered / (sheetArea * float64(len(states))) * 100
	}
	return res
}

// DecodeParts converts a submitted parts value (a JSON array of objects or
// a []Part) into parts.
func DecodeParts(value any) ([]Part, error) {
	switch v := value.(type) {
	case nil:
		return nil, fmt.Errorf("%w: parts are missing", ErrDecodeInput)
	case []Part:
		return v, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeInput, err)
	}
	var parts []Part
	if err := json.Unmarshal(raw, &parts); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeInput, err)
	}
	return parts, nil
}

func validParts(value any) bool {
	parts, err := DecodeParts(value)
	if err != nil || len(parts) == 0 {
		return false
	}
	for _, p := range parts {
		if p.Width <= 0 || p.Height <= 0 || p.Quantity < 1 {
			return false
		}
	}
	return true
}

func pieceLimit(value any) bool {
	parts, err := DecodeParts(value)
	if err != nil {
		return true
	}
	var total int
	for _, p := range parts {
		total += max(p.Quantity, 0)
	}
	return total <= MaxNestingPieces
}

func isBool(value any) bool {
	_, err := cast.ToBoolE(value)
	return err == nil
}

type nestingCalculator struct {
	form *validator.Validator
}

// NewNesting returns the sheet nesting calculator with its form.
func NewNesting(opts ...validator.Option) Calculator {
	form := validator.New(opts...)
	bindTemplate(form, "sheetWidth", validator.TemplateDimension, func(fv *validator.FieldValidation) {
		fv.Hint = "Stock sheet width"
		fv.Default = 3000.0
	})
	bindTemplate(form, "sheetHeight", validator.TemplateDimension, func(fv *validator.FieldValidation) {
		fv.Hint = "Stock sheet height"
		fv.Default = 1500.0
	})
	form.AddRule(validator.FieldValidation{
		Field: "spacing",
		Rules: []validator.Rule{
			validator.Required("Spacing is required"),
			validator.Min(0, "Spacing cannot be negative"),
			validator.Max(100, "Spacing cannot exceed 100mm"),
		},
		Hint:     "Gap between parts, at least the kerf width",
		Unit:     "mm",
		Default:  5.0,
		Category: validator.CategoryDimension,
	})
	form.AddRule(validator.FieldValidation{
		Field: "margin",
		Rules: []validator.Rule{
			validator.Required("Margin is required"),
			validator.Min(0, "Margin cannot be negative"),
			validator.Max(500, "Margin cannot exceed 500mm"),
		},
		Hint:     "Unused strip along every sheet edge",
		Unit:     "mm",
		Default:  10.0,
		Category: validator.CategoryDimension,
	})
	form.AddRule(validator.FieldValidation{
		Field: "allowRotation",
		Rules: []validator.Rule{
			validator.Custom(isBool, "Allow rotation must be true or false"),
		},
		Hint:    "Let parts turn by 90°; off for grained materials",
		Default: true,
	})
	form.AddRule(validator.FieldValidation{
		Field: "parts",
		Rules: []validator.Rule{
			validator.Required("At least one part is required"),
			validator.Custom(validParts, "Parts must be a list of {label, width, height, quantity} with positive sizes and whole quantities"),
			validator.Custom(pieceLimit, fmt.Sprintf("Parts cannot exceed %d pieces in total", MaxNestingPieces)),
		},
		Hint: "Rectangular parts with width, height and quantity",
	})
	return &nestingCalculator{form: form}
}

func (c *nestingCalculator) Name() string { return "nesting" }

func (c *nestingCalculator) Description() string {
	return "Shelf nesting of rectangular parts on stock sheets"
}

func (c *nestingCalculator) Form() *validator.Validator { return c.form }

func (c *nestingCalculator) Calculate(_ context.Context, in validator.Inputs) (any, error) {
	value, _ := in.Get("parts")
	parts, err := DecodeParts(value)
	if err != nil {
		return nil, err
	}
	rotation, _ := in.Get("allowRotation")
	return Nest(NestingInput{
		SheetWidth:    in.Float("sheetWidth"),
		SheetHeight:   in.Float("sheetHeight"),
		Spacing:       in.Float("spacing"),
		Margin:        in.Float("margin"),
		AllowRotation: cast.ToBool(rotation),
		Parts:         parts,
	})
}
