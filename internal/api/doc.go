// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

/*
Package api serves mining runs over HTTP.

Routes:

	GET    /api/v1/health                 liveness and store status
	POST   /api/v1/mine                   mine an inline database
	GET    /api/v1/runs                   stored run summaries, newest first
	GET    /api/v1/runs/{id}              one run with level statistics
	DELETE /api/v1/runs/{id}              remove a run
	GET    /api/v1/runs/{id}/patterns     filtered, paginated patterns
	GET    /metrics                       Prometheus exposition

Every JSON response uses the models.APIResponse envelope. Errors carry a
machine-readable code:

	VALIDATION_ERROR   malformed query, body or mining input (400)
	NOT_FOUND          unknown run (404)
	RATE_LIMITED       mine requests over the per-IP limit (429)
	UNAVAILABLE        no run store configured (503)
	CANCELED           client went away or server shut down mid-run (503)
	STORE_ERROR        run store failure (500)
	MINING_ERROR       unexpected mining failure (500)

Query parameters of the patterns endpoint:

	min_support  keep patterns with at least this support
	min_size     keep patterns with at least this many items
	max_size     keep patterns with at most this many items
	contains     keep patterns containing this subsequence, e.g. <{a} {c}>
	sort         "support" (descending) or "pattern" (canonical, default)
	limit        page size, 1..10000, default 100
	offset       page start, default 0

Stored runs are immutable, so run and pattern requests share a small LRU of
decoded runs. DELETE evicts the entry before touching the store.
*/
package api
