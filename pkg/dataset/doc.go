// Package dataset holds the tabular input of a stacked bar chart.
//
// # Records and Keys
//
// A [Record] is one input row, a map from field name to value. A [Key]
// selects which field is the category axis (the dimension) and which fields
// are stacked on top of each other (the metrics):
//
//	key := dataset.Key{Dimension: "month", Metrics: dataset.Metrics{"a", "b"}}
//
// In JSON, YAML and TOML the metric may be given as a single string or as a
// list, so both {"dimension": "month", "metric": "a"} and
// {"dimension": "month", "metric": ["a", "b"]} decode.
//
// # Stacks
//
// [New] groups records by their dimension value into [Stack] values, keeping
// the order in which categories are first encountered. Each stack carries
// the per-metric sums of its records, in Key order:
//
//	ds := dataset.New(records, key)
//	for _, s := range ds.Stacks() {
//	    fmt.Println(s.Key, s.Values, s.Total())
//	}
//
// [DataSet.Find] looks a stack up by category and [DataSet.Extent] computes
// the minimum and maximum of a projection over all stacks, skipping NaN.
//
// # Loading
//
// [Load] reads records from JSON, CSV/TSV, YAML, TOML and XLSX files, picking
// the decoder from the file extension. [ReadMongo] reads all documents of a
// MongoDB collection.
package dataset
