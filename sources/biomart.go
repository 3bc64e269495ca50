package sources

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"

	"github.com/biomap/biomap-go/mapping"
)

// DefaultBiomartURL is the Ensembl BioMart service endpoint.
const DefaultBiomartURL = "https://www.ensembl.org/biomart/martservice"

// biomartQuery is the XML query document BioMart expects.
type biomartQuery struct {
	XMLName           xml.Name       `xml:"Query"`
	VirtualSchemaName string         `xml:"virtualSchemaName,attr"`
	Formatter         string         `xml:"formatter,attr"`
	Header            int            `xml:"header,attr"`
	UniqueRows        int            `xml:"uniqueRows,attr"`
	Dataset           biomartDataset `xml:"Dataset"`
}

type biomartDataset struct {
	Name       string        `xml:"name,attr"`
	Interface  string        `xml:"interface,attr"`
	Attributes []biomartAttr `xml:"Attribute"`
}

type biomartAttr struct {
	Name string `xml:"name,attr"`
}

// biomartPairs posts a two-attribute BioMart query and parses the TSV
// response into pairs.
func biomartPairs(ctx context.Context, c *Client, serviceURL string, p *mapping.BiomartParams) ([]mapping.Pair, error) {
	doc := biomartQuery{
		VirtualSchemaName: "default",
		Formatter:         "TSV",
		Header:            0,
		UniqueRows:        1,
		Dataset: biomartDataset{
			Name:      p.Dataset,
			Interface: "default",
			Attributes: []biomartAttr{
				{Name: p.AttrA},
				{Name: p.AttrB},
			},
		},
	}

	query, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("building BioMart query: %w", err)
	}

	form := url.Values{}
	form.Set("query", xml.Header+string(query))

	body, err := c.PostForm(ctx, serviceURL, form.Encode())
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return parseTSVPairs(body, false)
}
