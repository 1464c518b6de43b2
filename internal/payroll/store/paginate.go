package store

import "context"

// Result is a fully accumulated query result. Truncated is set when the
// record ceiling stopped pagination before the store reported exhaustion,
// meaning the result may be incomplete.
type Result struct {
	Records   []Record
	Truncated bool
}

// FetchAll pages through a table until the store reports no more records or
// the accumulated count reaches the configured ceiling. On ceiling trip the
// partial result is returned with Truncated set rather than an error.
func (c *Client) FetchAll(ctx context.Context, table string, filter Filter) (*Result, error) {
	var all []Record
	offset := 0

	for {
		page, err := c.query(ctx, table, queryRequest{
			Limit:   c.pageSize,
			Offset:  offset,
			Filters: filter,
		})
		if err != nil {
			return nil, err
		}

		all = append(all, page.Records...)

		if !page.HasMore || len(page.Records) == 0 {
			return &Result{Records: all}, nil
		}

		if len(all) >= c.maxRecords {
			c.logger.Warn().
				Str("table", table).
				Int("fetched", len(all)).
				Int("ceiling", c.maxRecords).
				Msg("record ceiling reached, returning partial result")
			return &Result{Records: all, Truncated: true}, nil
		}

		offset += c.pageSize
	}
}
