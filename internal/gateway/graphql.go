package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// TagFilter restricts a transaction query to records carrying the
// given tag name with one of the listed values.
type TagFilter struct {
	Name   string
	Values []string
}

// TxEdge is one transaction returned by a query: its identifier plus
// decoded tags.
type TxEdge struct {
	ID   string
	Tags map[string]string
}

type graphqlRequest struct {
	Query string `json:"query"`
}

type graphqlResponse struct {
	Data struct {
		Transactions struct {
			Edges []struct {
				Node struct {
					ID   string `json:"id"`
					Tags []Tag  `json:"tags"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"transactions"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// QueryTransactions runs a tag-filtered transaction query against the
// gateway's GraphQL endpoint, returning at most limit results.
func (c *Client) QueryTransactions(ctx context.Context, filters []TagFilter, limit int) ([]TxEdge, error) {
	req := graphqlRequest{Query: buildTagQuery(filters, limit)}

	var resp graphqlResponse
	if err := c.do(ctx, http.MethodPost, "/graphql", req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("graphql query failed: %s", resp.Errors[0].Message)
	}

	edges := make([]TxEdge, 0, len(resp.Data.Transactions.Edges))
	for _, e := range resp.Data.Transactions.Edges {
		edges = append(edges, TxEdge{
			ID:   e.Node.ID,
			Tags: TagMap(e.Node.Tags),
		})
	}
	return edges, nil
}

func buildTagQuery(filters []TagFilter, limit int) string {
	var b strings.Builder
	b.WriteString("{ transactions(tags: [")
	for i, f := range filters {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, `{ name: %q, values: [`, f.Name)
		for j, v := range f.Values {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%q", escapeGraphQLString(v))
		}
		b.WriteString("] }")
	}
	fmt.Fprintf(&b, "] first: %d) { edges { node { id tags { name value } } } } }", limit)
	return b.String()
}

// escapeGraphQLString strips characters that would break out of a
// quoted GraphQL string literal. Identities and tag values are plain
// tokens; anything else is not worth round-tripping.
func escapeGraphQLString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '"' || r == '\\' || r < 0x20 {
			return -1
		}
		return r
	}, s)
}
