// Package http exposes the Markdown page handler over a fiber application.
//
// Routes:
//   - GET /* renders the Markdown file at <base dir>/<path> as an HTML page,
//     or answers 404 with "Fichier non trouvé: <resolved path>".
//
// Server owns the fiber app and its listener for the life of the process.
package http
