package share

import (
	"bytes"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/doughcalc/internal/domain"
	"github.com/hammamikhairi/doughcalc/internal/engine"
)

func TestDecodeDropsFlour(t *testing.T) {
	v := url.Values{}
	v.Set(KeyMode, "weight")
	v.Set(KeyFlourWeight, "1000")
	v.Set(KeyNames, "Flour,Water,Salt")
	v.Set(KeyPercentages, "100,66,2")

	r := Decode(v)
	require.Len(t, r.Ingredients, 2)
	assert.Equal(t, domain.Ingredient{Name: "Water", Percentage: "66", Weight: 660}, r.Ingredients[0])
	assert.Equal(t, domain.Ingredient{Name: "Salt", Percentage: "2", Weight: 20}, r.Ingredients[1])
}

func TestDecodeFlourIsCaseInsensitive(t *testing.T) {
	r := Decode(url.Values{
		KeyNames:       {"FLOUR,Water"},
		KeyPercentages: {"100,60"},
	})
	require.Len(t, r.Ingredients, 1)
	assert.Equal(t, "Water", r.Ingredients[0].Name)
}

func TestDecodeMismatchKeepsDefaultList(t *testing.T) {
	tests := []struct {
		name  string
		names string
		pcts  string
	}{
		{"more names", "Water,Salt", "66"},
		{"more percentages", "Water", "66,2"},
		{"names only", "Water", ""},
		{"percentages only", "", "66"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Decode(url.Values{
				KeyFlourWeight: {"500"},
				KeyNames:       {tt.names},
				KeyPercentages: {tt.pcts},
			})
			require.Len(t, r.Ingredients, len(domain.DefaultRecipe().Ingredients))
			assert.Equal(t, "Water", r.Ingredients[0].Name)
			// Scalars still apply and the weights follow them.
			assert.Equal(t, "500", r.FlourWeight)
			assert.Equal(t, 330.0, r.Ingredients[0].Weight)
		})
	}
}

func TestDecodeFlourPairLeavesNoMismatch(t *testing.T) {
	// The dropped Flour entry takes its percentage with it.
	r := Decode(url.Values{
		KeyNames:       {"Water,Flour"},
		KeyPercentages: {"66,100"},
	})
	require.Len(t, r.Ingredients, 1)
	assert.Equal(t, "66", r.Ingredients[0].Percentage)
}

func TestDecodeUnparsablePercentage(t *testing.T) {
	r := Decode(url.Values{
		KeyNames:       {"Water,Salt"},
		KeyPercentages: {"abc,2.5"},
	})
	require.Len(t, r.Ingredients, 2)
	assert.Equal(t, "0", r.Ingredients[0].Percentage)
	assert.Equal(t, 0.0, r.Ingredients[0].Weight)
	assert.Equal(t, "2.5", r.Ingredients[1].Percentage)
	assert.Equal(t, 25.0, r.Ingredients[1].Weight)
}

func TestDecodeIgnoresUnknownMode(t *testing.T) {
	r := Decode(url.Values{KeyMode: {"volume"}})
	assert.Equal(t, domain.ModeFlourWeight, r.Mode)
}

func TestDecodeDoughBallsDerivesFlour(t *testing.T) {
	r := Decode(url.Values{
		KeyMode:          {"doughBalls"},
		KeyNumberOfBalls: {"4"},
		KeyWeightPerBall: {"250"},
	})
	assert.Equal(t, domain.ModeDoughBalls, r.Mode)
	assert.Equal(t, 523.56, engine.Round2(engine.ParseOrZero(r.FlourWeight)))
	assert.Equal(t, 345.55, r.Ingredients[0].Weight)
}

func TestEncodeWritesActiveScalarsOnly(t *testing.T) {
	v := Encode(domain.DefaultRecipe())
	assert.Equal(t, "weight", v.Get(KeyMode))
	assert.Equal(t, "1000", v.Get(KeyFlourWeight))
	assert.False(t, v.Has(KeyNumberOfBalls))
	assert.Equal(t, "Water,Salt,Malt,Olive oil,Pre-ferment", v.Get(KeyNames))
	assert.Equal(t, "66,2,1,2,20", v.Get(KeyPercentages))

	balls := domain.DefaultRecipe()
	balls.Mode = domain.ModeDoughBalls
	v = Encode(balls)
	assert.Equal(t, "doughBalls", v.Get(KeyMode))
	assert.False(t, v.Has(KeyFlourWeight))
	assert.Equal(t, "4", v.Get(KeyNumberOfBalls))
	assert.Equal(t, "250", v.Get(KeyWeightPerBall))
}

func TestLinkRoundTrip(t *testing.T) {
	orig := domain.DefaultRecipe()
	orig.Mode = domain.ModeDoughBalls
	orig.NumberOfBalls = "6"
	orig.WeightPerBall = "280"
	orig.Ingredients = append(orig.Ingredients, domain.Ingredient{Name: "Yeast", Percentage: "0.2"})
	orig, _ = engine.Reconcile(orig)

	link, err := Link("https://dough.example/calc#top", orig)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://dough.example/calc?"))
	assert.NotContains(t, link, "#")

	v, err := ParseLink(link)
	require.NoError(t, err)
	assert.Equal(t, orig, Decode(v))
}

func TestParseLinkBareQuery(t *testing.T) {
	for _, raw := range []string{"activeTab=doughBalls", "?activeTab=doughBalls", "  /calc?activeTab=doughBalls#x "} {
		v, err := ParseLink(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, "doughBalls", v.Get(KeyMode), raw)
	}

	_, err := ParseLink("names=%zz")
	assert.Error(t, err)
}

func TestParseIngredient(t *testing.T) {
	ing, err := ParseIngredient(" Yeast = 0.3 ")
	require.NoError(t, err)
	assert.Equal(t, domain.Ingredient{Name: "Yeast", Percentage: "0.30"}, ing)

	_, err = ParseIngredient("Flour=100")
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = ParseIngredient("=5")
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = ParseIngredient("Water")
	assert.Error(t, err)
}

func TestReadDocumentYAML(t *testing.T) {
	doc := `
activeTab: doughBalls
numberOfBalls: 2
weightPerBall: "500"
names: [Flour, Water, Salt]
percentages: [100, 70, "2.5"]
`
	f, err := ReadDocument(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "2", f.NumberOfBalls)

	r := Apply(domain.DefaultRecipe(), f)
	require.Len(t, r.Ingredients, 2)
	assert.Equal(t, 579.71, engine.Round2(engine.ParseOrZero(r.FlourWeight)))
	assert.Equal(t, 405.8, r.Ingredients[0].Weight)
	assert.Equal(t, 14.49, r.Ingredients[1].Weight)
	assert.Equal(t, 1000.0, engine.Round2(engine.TotalWeight(&r)))
}

func TestReadDocumentJSON(t *testing.T) {
	doc := `{"activeTab":"weight","flourWeight":"500","names":["Water"],"percentages":["60"]}`
	f, err := ReadDocument(strings.NewReader(doc))
	require.NoError(t, err)

	r := Apply(domain.DefaultRecipe(), f)
	assert.Equal(t, []domain.Ingredient{{Name: "Water", Percentage: "60", Weight: 300}}, r.Ingredients)
}

func TestReadDocumentEmptyAndBroken(t *testing.T) {
	f, err := ReadDocument(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Fields{}, f)

	_, err = ReadDocument(strings.NewReader("names: [unclosed"))
	assert.Error(t, err)
}

func TestDocumentRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDocument(&buf, domain.DefaultRecipe()))
	assert.Contains(t, buf.String(), "activeTab: weight")

	path := filepath.Join(t.TempDir(), "recipe.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	f, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRecipe(), Apply(domain.DefaultRecipe(), f))

	_, err = LoadDocument(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
