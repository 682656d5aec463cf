/*
Package dataloader provides an implementation of the
data loader pattern, which is useful for batching up requests
to a database rather than making a large number of small queries.
The dataloader pattern is particularly useful when implementing
GraphQL servers.

To create a loader function, you need a query function and a key
function:

	loader := dataloader.New(queryFunc, keyFunc)

Loader Function

A loader function looks something like the following:

	func(key int64) func() (*Row, error)

Where key is a key identifying the row to be loaded. The
returned value is a function that, when called, will return
the row associated with the key (or an error). This returned
function is known as a "thunk". Nothing is queried until the first
thunk is called, and then all of the keys loaded so far are queried
together, up to MaxKeysPerQuery keys at a time.

Loader functions can use any comparable type as a key.
Besides New, which loads one row per key, there is NewMany, which
loads all of the rows associated with a foreign key, and Aggregate, which
loads a value such as a count.

Query Functions and Key Functions

The query function accepts a slice of keys and returns a slice
of rows. The order of the returned rows is arbitrary:

	func performQuery(ids []RowID) ([]*Row, error) {
		// ... perform database query here ...
	}

Because the query function can return rows in any order, it is
necessary to provide a function that, given a row, will return
the key associated with the row:

	func getKey(row *Row) RowID {
		return row.ID
	}

For NewMany the key function returns a foreign key instead of the
primary key. For Aggregate the key function returns two values: the key
and the value.

	func getCount(row *CountRow) (OtherID, int) {
		return row.OtherID, row.Count
	}

Package mapper creates loaders for mappers with mapper.NewLoader.
*/
package dataloader
