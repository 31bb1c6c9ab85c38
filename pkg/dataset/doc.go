// Package dataset loads the station and segment CSV files and cleans up station
// names so the two files agree.
//
// The station file needs the columns Station, Latitude and Longitude. The
// segment file needs "Station from (A)", "Station to (B)", Line and
// "Distance (Kms)". Other columns are ignored, and rows with a missing field or
// a malformed number are dropped.
//
//	ds, err := dataset.Load("London stations.csv", "London_transport_network.csv")
//	if err != nil {
//	    return err
//	}
//	network := dataset.Normalize(ds).Network(transit.DefaultPalette())
package dataset
