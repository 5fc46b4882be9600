// Package pagination drives page-by-page retrieval of NEIS datasets.
//
// NEIS reports the full row count of a query in every page head
// (list_total_count) and serves at most 1000 rows per request. Fetch walks
// pIndex = 1, 2, ... until the rows seen so far cover that total:
//
//	engine := pagination.NewEngine(client, pagination.DefaultConfig(apiKey))
//	schools, err := pagination.Fetch(ctx, engine, resource.SchoolInfo, query, envelope.SchoolInfo)
//
// The engine:
//   - Builds KEY, Type=json, pIndex and pSize ahead of the resource query
//   - Requests pages strictly one after another
//   - Decodes each body and extracts (total, rows) through the resource Kind
//   - Stops once total <= page*pageSize, or on the first error
//
// A failure on any page fails the whole call; partial results are never
// returned. Responses whose variant does not belong to the requested resource
// end the walk with what has been collected, unless StrictResult is set.
package pagination
