package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NLeSC/siga/config"
)

func validConfig() config.Config {
	return config.Config{
		URIs: config.URIs{
			RDFBase:    "https://solgenomics.net/",
			RDFCreator: "https://orcid.org/0000-0003-1711-7961",
			GFFSource:  "ftp://ftp.solgenomics.net/genomes/ITAG2.4_gene_models.gff3",
		},
		Dataset: config.Dataset{
			SpeciesName: "Solanum lycopersicum",
			NCBITaxonID: 4081,
		},
	}
}

func TestValidateURI(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		wantErr bool
	}{
		{"https", "https://solgenomics.net/", false},
		{"http", "http://example.org/base", false},
		{"ftp", "ftp://ftp.ensemblgenomes.org/pub/plants", false},
		{"file scheme", "file:///tmp/genome.gff3", true},
		{"relative path", "genomes/tomato", true},
		{"missing host", "https:///path-only", true},
		{"blank host", "ftp:// ", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.ValidateURI(tt.uri)
			if tt.wantErr {
				assert.ErrorIs(t, err, config.ErrInvalidURI)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())

	cfg = validConfig()
	cfg.URIs.RDFCreator = "not a uri"
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidURI)

	cfg = validConfig()
	cfg.Dataset.SpeciesName = "   "
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Dataset.NCBITaxonID = 0
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidTaxonID)

	cfg = validConfig()
	cfg.Dataset.NCBITaxonID = -4081
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidTaxonID)
}

const validYAML = `URIs:
  rdf_base: https://solgenomics.net/
  rdf_creator: https://orcid.org/0000-0003-1711-7961
  gff_source: ftp://ftp.solgenomics.net/genomes/ITAG2.4_gene_models.gff3
Dataset:
  species_name: Solanum lycopersicum
  ncbi_taxon_id: 4081
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	cfg, err := config.LoadFile(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "https://solgenomics.net/", cfg.URIs.RDFBase)
	assert.Equal(t, "Solanum lycopersicum", cfg.Dataset.SpeciesName)
	assert.Equal(t, 4081, cfg.Dataset.NCBITaxonID)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := config.LoadFile(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoadFileUnknownField(t *testing.T) {
	content := validYAML + "Extra:\n  surprise: true\n"
	_, err := config.LoadFile(writeConfig(t, content))
	assert.Error(t, err)
}

func TestLoadFileUnknownAttribute(t *testing.T) {
	content := `URIs:
  rdf_base: https://solgenomics.net/
  rdf_creator: https://orcid.org/0000-0003-1711-7961
  gff_source: ftp://ftp.solgenomics.net/genomes/models.gff3
  rdf_license: https://creativecommons.org/licenses/by/4.0/
Dataset:
  species_name: Solanum lycopersicum
  ncbi_taxon_id: 4081
`
	_, err := config.LoadFile(writeConfig(t, content))
	assert.Error(t, err)
}

func TestLoadFileInvalidValues(t *testing.T) {
	content := `URIs:
  rdf_base: solgenomics.net
  rdf_creator: https://orcid.org/0000-0003-1711-7961
  gff_source: ftp://ftp.solgenomics.net/genomes/models.gff3
Dataset:
  species_name: Solanum lycopersicum
  ncbi_taxon_id: 4081
`
	_, err := config.LoadFile(writeConfig(t, content))
	assert.ErrorIs(t, err, config.ErrInvalidURI)
}
