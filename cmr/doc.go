// Package cmr executes queries built with package query against the NASA
// Common Metadata Repository search API.
//
// Basic usage:
//
//	client, err := cmr.NewClient(cmr.DefaultBaseURL, logger)
//	if err != nil {
//		return err
//	}
//
//	q := query.NewGranuleQuery().
//		ShortName("MOD09GA").
//		Version("006").
//		Point("44.6,-63.6")
//
//	resp, err := client.Execute(ctx, q)
//	if err != nil {
//		return err
//	}
//	for _, entry := range cmr.Entries(resp) {
//		fmt.Println(entry["producer_granule_id"])
//	}
//
// Validation errors from the query are returned before a request is sent.
// Network failures are reported as *TransportError, non-2xx responses as
// *RequestError. A successful body must be a JSON object; anything else,
// including null, arrays and invalid JSON, is a *DecodeError.
//
// A Client is safe for concurrent use. ExecuteAll fans a batch of queries
// out over a bounded number of goroutines.
package cmr
