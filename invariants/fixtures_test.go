package invariants

import (
	"strconv"

	"github.com/regions-qa/regions-contract-tests/regions"
)

var fixtureCodes = []string{"ru", "kz", "kg", "cz", "ua"}

func fixtureRegions(n int) []regions.Region {
	ret := make([]regions.Region, 0, n)
	for i := 1; i <= n; i++ {
		ret = append(ret, regions.Region{
			ID:      regions.RegionID(strconv.Itoa(i)),
			Name:    "Регион " + strconv.Itoa(i),
			Country: regions.Country{Code: fixtureCodes[i%len(fixtureCodes)]},
		})
	}
	return ret
}

// sweep splits all into pages the way a correct service would.
func sweep(all []regions.Region, pageSize, pages int) []regions.ResultPage {
	ret := make([]regions.ResultPage, 0, pages)
	for p := 0; p < pages; p++ {
		start, end := p*pageSize, (p+1)*pageSize
		if start > len(all) {
			start = len(all)
		}
		if end > len(all) {
			end = len(all)
		}
		ret = append(ret, regions.ResultPage{Total: len(all), Items: append([]regions.Region{}, all[start:end]...)})
	}
	return ret
}

func pageResponse(items ...regions.Region) regions.Response {
	return regions.Response{Page: &regions.ResultPage{Total: len(items), Items: items}}
}

func errorResponse(message string) regions.Response {
	return regions.Response{Error: &regions.ErrorEnvelope{Message: message}}
}

func region(id, name, code string) regions.Region {
	return regions.Region{ID: regions.RegionID(id), Name: name, Country: regions.Country{Code: code}}
}
