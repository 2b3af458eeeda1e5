package pipeline

import (
	"reflect"
	"testing"
)

func TestParseObservationBodyAndSources(t *testing.T) {
	obs := "본문:\n--- 문서 (제목) ---\n핵심 내용입니다.\n\n출처:\n- https://example.com/a\n- https://example.com/b"

	content, links := ParseObservation(obs)

	if content != "--- 문서 (제목) ---\n핵심 내용입니다." {
		t.Fatalf("unexpected content: %q", content)
	}
	want := []string{"https://example.com/a", "https://example.com/b"}
	if !reflect.DeepEqual(links, want) {
		t.Fatalf("links = %v, want %v", links, want)
	}
}

func TestParseObservationMarkdownLinks(t *testing.T) {
	obs := "자세한 내용은 [문서](https://example.com/doc)를 참고하세요."

	_, links := ParseObservation(obs)

	if len(links) != 1 || links[0] != "https://example.com/doc" {
		t.Fatalf("links = %v", links)
	}
}

func TestParseObservationTrailingParticles(t *testing.T) {
	cases := map[string]string{
		"https://example.com/a에서 확인했다":  "https://example.com/a",
		"https://example.com/b로 이동":     "https://example.com/b",
		"(https://example.com/c)":      "https://example.com/c",
		"https://example.com/d.":       "https://example.com/d",
		"https://example.com/e), 그리고":  "https://example.com/e",
	}
	for input, want := range cases {
		_, links := ParseObservation(input)
		if len(links) != 1 || links[0] != want {
			t.Errorf("ParseObservation(%q) links = %v, want [%s]", input, links, want)
		}
	}
}

func TestParseObservationDeduplicatesLinks(t *testing.T) {
	obs := "[문서](https://example.com/a) 그리고 https://example.com/a 반복"

	_, links := ParseObservation(obs)

	if len(links) != 1 {
		t.Fatalf("expected one link, got %v", links)
	}
}

func TestParseObservationFinalAnswerPreferred(t *testing.T) {
	obs := "Thought: 검색 결과를 정리한다. 결과가 길게 이어진다.\n" +
		"Final Answer: 정리된 답변 https://example.com/x"

	content, links := ParseObservation(obs)

	if content != "정리된 답변 https://example.com/x" {
		t.Fatalf("unexpected content: %q", content)
	}
	if len(links) != 1 || links[0] != "https://example.com/x" {
		t.Fatalf("links = %v", links)
	}
}

func TestParseObservationFinalAnswerWithoutLinks(t *testing.T) {
	obs := "중간 설명\nFinal Answer: 링크 없는 답변"

	content, links := ParseObservation(obs)

	if content != "링크 없는 답변" {
		t.Fatalf("unexpected content: %q", content)
	}
	if len(links) != 0 {
		t.Fatalf("expected no links, got %v", links)
	}
}

func TestParseObservationEmpty(t *testing.T) {
	content, links := ParseObservation("")

	if content != emptyContentPlaceholder {
		t.Fatalf("content = %q, want placeholder", content)
	}
	if len(links) != 0 {
		t.Fatalf("expected no links, got %v", links)
	}
}

func TestParseObservationInvalidURLDropped(t *testing.T) {
	_, links := ParseObservation("잘못된 링크 https://. 입니다")

	if len(links) != 0 {
		t.Fatalf("expected invalid link dropped, got %v", links)
	}
}
