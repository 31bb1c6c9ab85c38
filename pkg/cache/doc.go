// Package cache stores rendered map artifacts.
//
// Three backends implement [Cache]:
//
//   - [NullCache] stores nothing; the interactive explorer uses it
//   - [FileCache] keeps JSON entries under a local directory
//   - [RedisCache] keeps entries in redis with native expiry
//
// [Open] picks one from a [Config]. Keys come from a [Keyer]: an artifact key
// hashes the dataset hash together with the selected lines, output format,
// canvas size and styling, so any change to the inputs produces a new key.
package cache
