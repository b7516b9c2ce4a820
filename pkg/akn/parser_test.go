package akn

import (
	"strings"
	"testing"
)

const sampleAct = `<akomaNtoso xmlns="http://docs.oasis-open.org/legaldocml/ns/akn/3.0">
  <act>
    <meta>
      <identification>
        <FRBRWork>
          <legalResource>
            <jolux name="dateDocument" value="1799-04-11"/>
            <jolux name="typeDocument" value="http://data.legilux.public.lu/resource/authority/resource-type/LOI"/>
          </legalResource>
        </FRBRWork>
        <FRBRExpression>
          <FRBRalias name="title" value="Loi du 11 avril 1799"/>
        </FRBRExpression>
      </identification>
    </meta>
    <preface>
      <longTitle><p>Loi du 11 avril 1799 concernant les poids et mesures.</p></longTitle>
    </preface>
    <body>
      <chapter>
        <num>Chapitre 1</num>
        <article>
          <num>Art. 1<sup>er</sup>.</num>
          <alinea><content><p>Premier alinéa.</p></content></alinea>
          <alinea><content><p>Deuxième alinéa.</p></content></alinea>
        </article>
        <article>
          <num>Art. 2.</num>
          <paragraph><content><p>Un paragraphe.</p></content></paragraph>
        </article>
        <article>
          <num>Art. 3.</num>
        </article>
      </chapter>
      <section>
        <article>
          <num>Art. 10bis</num>
          <content><p>Dispositions transitoires.</p></content>
        </article>
      </section>
    </body>
  </act>
</akomaNtoso>`

func TestParseActMetadata(t *testing.T) {
	act := ParseAct([]byte(sampleAct))
	if act == nil {
		t.Fatal("Expected a parsed act")
	}
	if act.Title != "Loi du 11 avril 1799 concernant les poids et mesures." {
		t.Errorf("Unexpected title %q", act.Title)
	}
	if act.DateDocument != "1799-04-11" {
		t.Errorf("Expected dateDocument %q, got %q", "1799-04-11", act.DateDocument)
	}
	if act.TypeDocument != "LOI" {
		t.Errorf("Expected typeDocument %q, got %q", "LOI", act.TypeDocument)
	}
}

func TestParseActProvisions(t *testing.T) {
	act := ParseAct([]byte(sampleAct))
	if act == nil {
		t.Fatal("Expected a parsed act")
	}
	if len(act.Provisions) != 3 {
		t.Fatalf("Expected 3 provisions (empty article dropped), got %d", len(act.Provisions))
	}

	first := act.Provisions[0]
	if first.Ref != "art1" {
		t.Errorf("Expected ref %q, got %q", "art1", first.Ref)
	}
	if first.Title != "Article 1er" {
		t.Errorf("Expected title %q, got %q", "Article 1er", first.Title)
	}
	if first.Chapter != "Chapitre 1" {
		t.Errorf("Expected chapter %q, got %q", "Chapitre 1", first.Chapter)
	}
	if first.Content != "Premier alinéa.\n\nDeuxième alinéa." {
		t.Errorf("Unexpected content %q", first.Content)
	}

	second := act.Provisions[1]
	if second.Ref != "art2" || second.Content != "Un paragraphe." {
		t.Errorf("Unexpected second provision %+v", second)
	}

	third := act.Provisions[2]
	if third.Ref != "art10bis" {
		t.Errorf("Expected ref %q, got %q", "art10bis", third.Ref)
	}
	if third.Section != "1" {
		t.Errorf("Expected positional section label %q, got %q", "1", third.Section)
	}
}

func TestParseActTitleFallsBackToAlias(t *testing.T) {
	noPreface := strings.Replace(sampleAct,
		"<preface>\n      <longTitle><p>Loi du 11 avril 1799 concernant les poids et mesures.</p></longTitle>\n    </preface>", "", 1)
	act := ParseAct([]byte(noPreface))
	if act == nil {
		t.Fatal("Expected a parsed act")
	}
	if act.Title != "Loi du 11 avril 1799" {
		t.Errorf("Expected alias title, got %q", act.Title)
	}
}

func TestParseActRejectsNonActDocuments(t *testing.T) {
	cases := []struct {
		name string
		xml  string
	}{
		{"not akoma ntoso", `<html><body>erreur</body></html>`},
		{"no act", `<akomaNtoso><judgment/></akomaNtoso>`},
		{"garbage", `{{{`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if act := ParseAct([]byte(tc.xml)); act != nil {
				t.Errorf("Expected nil act, got %+v", act)
			}
		})
	}
}

func TestCleanArticleNumber(t *testing.T) {
	cases := []struct {
		raw      string
		expected string
	}{
		{"Art. 1", "1"},
		{"Art. 1er.", "1er"},
		{"Art. 1 .er", "1er"},
		{"art 5", "5"},
		{"Art. 10bis", "10bis"},
		{"Art.  12 .", "12"},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			if got := cleanArticleNumber(tc.raw); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestNormalizeRef(t *testing.T) {
	cases := []struct {
		number   string
		expected string
	}{
		{"1er", "art1"},
		{"1", "art1"},
		{"Art. 1er", "art1"},
		{"10bis", "art10bis"},
		{"12ter", "art12ter"},
		{"5.", "art5"},
		{"A", "arta"},
	}

	for _, tc := range cases {
		t.Run(tc.number, func(t *testing.T) {
			if got := NormalizeRef(tc.number); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}
