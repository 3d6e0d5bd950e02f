// Package kalshi provides a signed REST client for the Kalshi trade API.
//
// Endpoints:
//   - Production: https://api.elections.kalshi.com/trade-api/v2
//   - Demo: https://demo-api.kalshi.co/trade-api/v2
//
// Every request, read or write, carries fresh RSA-PSS signature headers.
package kalshi
