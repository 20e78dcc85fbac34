// Package directory provides a Go client for the FindBrexitConsultants
// directory API.
//
// Searches run the same resolution as the service: a server attempt with a
// deadline, then a local fallback that filters and sorts the approved list on
// the caller side. Service and industry slugs are only honoured by the server
// attempt; Result reports when they were dropped.
//
//	client, _ := directory.New("https://api.example.com")
//	res, _ := client.Search().
//	    Services("customs-declarations").
//	    Locations("birmingham").
//	    VerifiedOnly().
//	    SortBy(directory.SortRating).
//	    Do(ctx)
//	fmt.Println(res.Strategy, res.Pagination.Total)
package directory
