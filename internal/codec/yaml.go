package codec

import (
	"fmt"
	"io"

	"crewmap/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export of datasets
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlDataset represents the YAML structure for a dataset
type yamlDataset struct {
	Alliances []yamlAlliance `yaml:"alliances"`
	Sets      []yamlSet      `yaml:"sets"`
	Members   []yamlMember   `yaml:"members"`
}

type yamlAlliance struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Status string `yaml:"status,omitempty"`
	Bio    string `yaml:"bio,omitempty"`
}

type yamlSet struct {
	ID          string   `yaml:"id"`
	PrimaryName string   `yaml:"primary_name"`
	Names       []string `yaml:"names,omitempty"`
	Status      string   `yaml:"status,omitempty"`
	Territory   string   `yaml:"territory,omitempty"`
	Colors      string   `yaml:"colors,omitempty"`
	Bio         string   `yaml:"bio,omitempty"`
	Alliance    string   `yaml:"alliance,omitempty"`
	Allies      []string `yaml:"allies,omitempty"`
	Enemies     []string `yaml:"enemies,omitempty"`
}

type yamlMember struct {
	ID          string   `yaml:"id"`
	FirstName   string   `yaml:"first_name,omitempty"`
	LastName    string   `yaml:"last_name,omitempty"`
	Nicknames   []string `yaml:"nicknames,omitempty"`
	Status      string   `yaml:"status,omitempty"`
	Affiliation string   `yaml:"affiliation,omitempty"`
	Set         string   `yaml:"set,omitempty"`
	Alliance    string   `yaml:"alliance,omitempty"`
	Bio         string   `yaml:"bio,omitempty"`
}

// Parse imports a dataset from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Dataset, error) {
	var yd yamlDataset
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&yd); err != nil {
		if err == io.EOF {
			return domain.NewDataset(), nil
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ds := domain.NewDataset()

	for _, ya := range yd.Alliances {
		ds.AddAlliance(domain.Alliance{
			ID:     ya.ID,
			Name:   ya.Name,
			Status: domain.RecordStatus(ya.Status),
			Bio:    ya.Bio,
		})
	}

	for _, ys := range yd.Sets {
		ds.AddSet(domain.Set{
			ID:          ys.ID,
			PrimaryName: ys.PrimaryName,
			Names:       ys.Names,
			Status:      domain.RecordStatus(ys.Status),
			Territory:   ys.Territory,
			Colors:      ys.Colors,
			Bio:         ys.Bio,
			AllianceID:  ys.Alliance,
			Allies:      ys.Allies,
			Enemies:     ys.Enemies,
		})
	}

	for _, ym := range yd.Members {
		ds.AddMember(domain.Member{
			ID:          ym.ID,
			FirstName:   ym.FirstName,
			LastName:    ym.LastName,
			Nicknames:   ym.Nicknames,
			Status:      domain.MemberStatus(ym.Status),
			Affiliation: domain.Affiliation(ym.Affiliation),
			SetID:       ym.Set,
			AllianceID:  ym.Alliance,
			Bio:         ym.Bio,
		})
	}

	return ds, nil
}

// Export exports a dataset to YAML
func (c *YAMLCodec) Export(ds *domain.Dataset, w io.Writer) error {
	yd := yamlDataset{
		Alliances: make([]yamlAlliance, 0, len(ds.Alliances)),
		Sets:      make([]yamlSet, 0, len(ds.Sets)),
		Members:   make([]yamlMember, 0, len(ds.Members)),
	}

	for _, a := range ds.Alliances {
		yd.Alliances = append(yd.Alliances, yamlAlliance{
			ID:     a.ID,
			Name:   a.Name,
			Status: string(a.Status),
			Bio:    a.Bio,
		})
	}

	for _, s := range ds.Sets {
		yd.Sets = append(yd.Sets, yamlSet{
			ID:          s.ID,
			PrimaryName: s.PrimaryName,
			Names:       s.Names,
			Status:      string(s.Status),
			Territory:   s.Territory,
			Colors:      s.Colors,
			Bio:         s.Bio,
			Alliance:    s.AllianceID,
			Allies:      s.Allies,
			Enemies:     s.Enemies,
		})
	}

	for _, m := range ds.Members {
		yd.Members = append(yd.Members, yamlMember{
			ID:          m.ID,
			FirstName:   m.FirstName,
			LastName:    m.LastName,
			Nicknames:   m.Nicknames,
			Status:      string(m.Status),
			Affiliation: string(m.Affiliation),
			Set:         m.SetID,
			Alliance:    m.AllianceID,
			Bio:         m.Bio,
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&yd); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
