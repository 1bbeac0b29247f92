package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadSources_MergesAndTags(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "milk.tsv",
		"product_name_es\tbrands\tsugars_value\tfat_value\tenergy-kcal_value\n"+
			"Leche Entera\tHacendado\t4.5\t3.6\t64\n"+
			"Leche Desnatada\tPascual\t4.7\t0.3\t35\n")
	writeFile(t, dir, "cereals.tsv",
		"product_name_es\tbrands\tsugars_value\tfat_value\tenergy-kcal_value\n"+
			"ProductX\tKellogg's\t5\t0\t120\n")
	writeFile(t, dir, "honey.csv",
		"product_name_es,brands,sugars_value\n"+
			"Miel de Flores,Granja San Francisco,80\n")

	products, err := LoadSources(dir)
	require.NoError(t, err)
	require.Len(t, products, 4)

	byName := make(map[string]string)
	for _, p := range products {
		byName[p.Name] = p.MacroCategory
	}
	assert.Equal(t, "milk", byName["Leche Entera"])
	assert.Equal(t, "cereals", byName["ProductX"])
	assert.Equal(t, "honey", byName["Miel de Flores"])
}

func TestLoadSources_CommaDelimiterSniffing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "jam.csv",
		"product_name_es,brands,sugars_value,fat_value\n"+
			"Mermelada Fresa,Helios,45.2,0.1\n")

	products, err := LoadSources(dir)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Mermelada Fresa", products[0].Name)
	assert.InDelta(t, 45.2, products[0].Sugars, 1e-9)
}

func TestLoadSources_Cleaning(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "yogurt.tsv",
		"product_name_es\tbrands\tquantity\tsugars_value\tproteins_value\n"+
			"Yogur Natural\t\t\t\tnot-a-number\n"+
			"\tDanone\t125 g\t12\t3\n"+ // no name: dropped
			"Yogur Griego\tFage\t150 g\t-4\t9\n") // negative clamps to sentinel

	products, err := LoadSources(dir)
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "Unknown", products[0].Brand)
	assert.Equal(t, "Unknown", products[0].Quantity)
	assert.Zero(t, products[0].Sugars)
	assert.Zero(t, products[0].Proteins)

	assert.Equal(t, "Yogur Griego", products[1].Name)
	assert.Zero(t, products[1].Sugars)
	assert.Equal(t, 9.0, products[1].Proteins)
}

func TestLoadSources_SkipsBadSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "milk.tsv",
		"product_name_es\tsugars_value\nLeche Entera\t4.5\n")
	// unknown category stem
	writeFile(t, dir, "snacks.tsv",
		"product_name_es\tsugars_value\nPatatas\t0.5\n")
	// no name column at all
	writeFile(t, dir, "honey.tsv",
		"code\tsugars_value\n123\t80\n")

	products, err := LoadSources(dir)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "milk", products[0].MacroCategory)
}

func TestLoadSources_EmptyIsFatal(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadSources(dir)
	assert.Error(t, err)

	writeFile(t, dir, "unrelated.tsv", "code\tsugars_value\n1\t2\n")
	_, err = LoadSources(dir)
	assert.Error(t, err)
}

func TestLoadSources_RaggedRowsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cereals.tsv",
		"product_name_es\tbrands\tsugars_value\n"+
			"Corn Flakes\tKellogg's\t8\n"+
			"Broken Row\tonly-two-fields\n"+
			"Muesli\tAlpen\t16\n")

	products, err := LoadSources(dir)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Corn Flakes", products[0].Name)
	assert.Equal(t, "Muesli", products[1].Name)
}
