package legilux

import "testing"

func TestSeedID(t *testing.T) {
	cases := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			"canonical eli uri",
			"http://data.legilux.public.lu/eli/etat/leg/loi/2016/07/23/n1/jo",
			"loi-2016-07-23-n1",
		},
		{
			"uppercase input is lowered",
			"http://data.legilux.public.lu/eli/etat/leg/LOI/2016/07/23/N1/jo",
			"loi-2016-07-23-n1",
		},
		{
			"rgd uri",
			"http://data.legilux.public.lu/eli/etat/leg/rgd/1999/12/31/n12/jo",
			"rgd-1999-12-31-n12",
		},
		{
			"fallback joins last four segments",
			"http://example.lu/some/odd/path/shape",
			"some-odd-path-shape",
		},
		{
			"short fallback keeps everything",
			"a/b",
			"a-b",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SeedID(tc.uri); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestSeedIDIsStable(t *testing.T) {
	uri := "http://data.legilux.public.lu/eli/etat/leg/loi/2016/07/23/n1/jo"
	if SeedID(uri) != SeedID(uri) {
		t.Error("Expected identical IDs for identical URIs")
	}
}
