package pipeline

// Prompt templates used by the pipeline stages. All templates are filled
// with fmt.Sprintf.

const decidePrompt = `
다음 사용자 질의에 대해,
- 의미를 알 수 없거나, LLM만으로 즉시 정확히 답변할 수 있으면, 'NO_SEARCH'
- 사용자 질의가 검색을 명시했거나, LLM만으로 답변할 수 없다면, (최신 정보·수치·통계·주가 등) 'SEARCH'
를 반드시 출력하라.

질의: 'ㅇ'
답변: NO_SEARCH

질의: '파이썬 리스트 컴프리헨션이 뭐야?'
답변: NO_SEARCH

질의: '엔비디아 최신 주가 알려줘'
답변: SEARCH

질의: 'RAG 기초에 대해 검색해'
답변: SEARCH

질의: %s
답변:`

const noSearchPrompt = "사용자 질의에 대해 간결하고 명확하게 20자 이내로 답변하라.\n질의: %s\n답변: "

const rewriteQuestionPrompt = `사용자의 질문형 쿼리를 웹 검색 엔진에서 좋은 결과를 얻을 수 있도록, **핵심 키워드 중심의 간결한 검색 구문**으로 재작성하라.

조건:
- 원본 질문의 핵심 의도와 중요한 명사/개념은 반드시 유지하라.
- '어떻게', '왜', '무엇', '언제', '어디서', '인지' 등 의문형 표현 대신, 검색 결과에 해당 내용이 포함될 만한 키워드 조합으로 바꿔라.
- 검색에 불필요한 조사, 부사, 구문은 최대한 제거하되, 키워드의 의미가 왜곡되지 않도록 주의하라.
- 최종 결과는 검색 엔진 입력에 바로 사용될 수 있어야 한다.

예시:
쿼리: '왜 금리가 계속 오르고 있나요?'
재작성된 쿼리: '최근 금리 인상 원인'

쿼리: '챗GPT는 어떻게 작동하나요?'
재작성된 쿼리: '챗GPT 작동 원리 및 기술'

쿼리: '요즘 미국 달러 환율이 왜 이렇게 낮아?'
재작성된 쿼리: '최근 미국 달러 환율 하락 이유 분석'

쿼리: %s
재작성된 쿼리:`

const rewriteKeywordPrompt = `사용자 쿼리에서 검색 목적(무엇을 하고자 하는지)을 파악하고, 웹 검색 엔진에서 **정확하고 효율적인 결과**를 얻을 수 있는 **명확하고 구체적인 검색 구문**으로 재작성하라. 이 쿼리는 주로 특정 정보, 방법, 대상 찾기 등 지시적인 성격을 가진다.

조건:
- **검색 목적 달성**에 필요한 핵심 키워드(주로 명사)를 반드시 포함하라.
- 원본 쿼리에 포함된 **중요한 제약 조건이나 특정 대상** (예: 특정 버전, 특정 지역, 특정 기간 등)이 있다면 검색 구문에 반영하라.
- 불필요한 미사여구, 감탄사, 접속사, 일반적인 질문 표현 ('알려줘', '궁금해' 등)은 제거하여 간결하게 만들어라.
- 최종 결과는 검색 엔진에 바로 입력하기 좋은 형태여야 한다.

예시:
쿼리: '유튜브 썸네일 만드는 최신 방법 알려줘'
재작성된 쿼리: '유튜브 썸네일 제작 최신 가이드'

쿼리: '파이썬 3.10 버전으로 웹 크롤링 하는 기초적인 법 알려줘'
재작성된 쿼리: '파이썬 3.10 웹 크롤링 기초'

쿼리: '면접용 1분 자기소개서 잘 쓰는 팁 알려줘'
재작성된 쿼리: '면접 1분 자기소개 작성 팁'

쿼리: %s
재작성된 쿼리:`

const rewriteGeneralPrompt = `사용자의 쿼리가 넓은 주제를 탐색하거나, 사례/추천/비교/동향 등을 찾는 성격일 때, 웹 검색 엔진에서 **관련성 높고 다양한 정보**를 찾는데 효과적인 **구체화된 검색 문장**으로 재작성하라.

조건:
- 쿼리에 숨겨진 사용자 의도(예: 최신 정보 찾기, 장단점 비교, 구체적인 사용 사례, 모범 사례 학습 등)를 파악하여 검색 문장에 반영하라. 이를 위해 "최신 동향", "장단점 비교", "구체적인 사례", "활용 방안", "모범 사례", "가이드라인" 등의 구문을 적절히 추가할 수 있다.
- 너무 포괄적이거나 모호한 쿼리는 **핵심 주제를 유지하면서 좀 더 구체적인 방향**으로 재구성하라. (예: 'AI 발전' -> '최신 AI 기술 동향 및 활용 사례')
- 최종 결과는 검색 엔진 입력에 반드시 적합한 형태이어야 하며, 자연스러운 문장 형태를 유지해도 좋다.
- 원본 쿼리의 핵심 주제에서 절대로 벗어나지 않도록 주의하라.

예시:
쿼리: '챗GPT를 활용한 재미있는 사례 알려줘'
재작성된 쿼리: '챗GPT 창의적인 활용 사례 모음'

쿼리: '요즘 인기 있는 AI 서비스 뭐가 있어?'
재작성된 쿼리: '최신 인기 AI 서비스 종류 및 특징 비교'

쿼리: '재택근무 잘하는 방법이나 사례 있을까?'
재작성된 쿼리: '재택근무 생산성 향상 방법 및 성공 사례'

쿼리: '기후 변화 영향'
재작성된 쿼리: '기후 변화가 환경과 사회에 미치는 영향 분석'

쿼리: %s
재작성된 쿼리:`

const rewriteBasicPrompt = `사용자의 쿼리가 매우 짧거나, 문법적으로 오류가 있거나, 의미가 불명확하여 다른 방식으로 처리하기 어려울 때, **최대한 원본의 핵심 단어를 유지하면서 검색 엔진에 입력 가능한 최소한의 키워드 구문**으로 재작성하라.

조건:
- 원본 쿼리에 나타난 **가장 중요한 명사 또는 키워드**를 식별하고 유지하라.
- 불필요한 감탄사, 중복 단어, 명백한 오타 등 노이즈를 제거하라.
- **임의로 장소, 시간, 구체적인 맥락을 과도하게 추측하거나 추가하지 마라.** (예: '날씨' -> '오늘 서울 날씨' X, '날씨 정보' O)
- 검색이 가능하도록 최소한의 단어를 조합하되, 원본의 의미를 크게 왜곡하지 마라.
- 최종 결과는 간결한 키워드 또는 키워드 구문 형태여야 한다.

예시:
쿼리: '이거 왜이럼???????'
재작성된 쿼리: '문제 원인 또는 해결 방법'

쿼리: '서울 날씨 알려줭'
재작성된 쿼리: '오늘 서울 날씨 정보'

쿼리: '엔비디아 주가 얼마임?'
재작성된 쿼리: '엔비디아 주가'

쿼리: %s
재작성된 쿼리:`

// routerPrompt classifies a query into one of the rewrite intents. Filled
// with the destination list and the query.
const routerPrompt = `다음 사용자 쿼리를 아래 분류 중 정확히 하나로 분류하라. 분류 이름만 출력하라.

%s

쿼리: %s
분류:`

const analyzePrompt = `다음 쿼리를 분석하여 검색 엔진 선택에 유의미한 핵심 속성들을 도출하라.
각 속성은 하나의 명확한 값 또는 요약 구문으로 기술하라.

쿼리: %s

분석 결과:
- 최신성 요구 수준: [매우 높음 (실시간/수시간 내), 높음 (최근/수일 내), 중간 (최근 정보 선호), 낮음 (시간 상관 없음)]
- 지역 중심성: [한국 특정, 특정 해외 지역, 전 세계적, 지역 무관]
- 정보 유형: [뉴스/기사, 블로그/리뷰/카페글, 지식인/커뮤니티, 기술 문서/논문, 금융/주가/환율 데이터, 날씨 데이터, 제품/쇼핑 정보, 간단한 정의/개념, 기타]
- 탐색 깊이: [얕음 (간단 확인), 보통 (대략적 개요), 깊음 (비교/사례/리뷰 등)]
- 쿼리 난이도/명확성: [명확함, 다소 모호함, 매우 모호함]
- 핵심 주제/키워드: [주제를 간결하게 요약하라]
`

const selectEnginePrompt = `다음은 사용자 쿼리와 그에 대한 분석 결과이다. 아래 조건을 기준으로, 가장 적합한 검색 엔진 하나만 선택하라.

[조건]

1. SerpAPI로 선택:
- 최신성 요구 수준이 '매우 높음' 또는 '높음'
- 또는 정보 유형이 '금융/주가/환율 데이터', '날씨 데이터', '뉴스/기사', '실시간 트렌드'

2. Naver로 선택:
- 지역 중심성이 '한국 특정'이며 정보 유형이 한국인의 관점에서 '뉴스/기사', '블로그/리뷰/카페글', '지식인/커뮤니티', '제품/쇼핑 정보' 등
- 또는 쿼리 난이도가 '다소 모호함'이면서 한국 대상 정보일 때

3. CES로 선택:
- 정보 유형이 정확도가 높고, 최신성 요구 수준이 '높음' 또는 탐색 깊이가 '깊음'이거나 주제가 학문적/글로벌할 때
- 포괄적인 '기술 문서/논문', '간단한 정의/개념', 또는 지역 중심성이 '해외/전세계'

4. 애매하거나 판단 어려운 경우 기본적으로 Naver 선택

쿼리: %s
분석 결과:
%s

최종 선택 엔진 (반드시 SerpAPI, Naver, CES 중 하나만 따옴표 없이 출력):
`

const summarizePrompt = `
아래 검색 결과 본문(content)과 원본 검색 쿼리(refined_query)를 참고하여, 사용자의 쿼리에 대한 답변이 될 수 있도록 본문의 핵심 내용을 **최소 3-4문장 이상의 충분한 길이로 상세하게 요약**하라.

조건:
- 반드시 본문 내용에만 기반하여 작성하라.
- 쿼리와 직접적으로 관련 없는 부가 정보나 광고성 문구는 제거하라.
- 원본의 중요한 사실, 수치, 개념 등은 반드시 유지하면서 자연스럽게 설명하라.
- 출처 및 URL('https://...' 형식)은 반드시 포함하라.

쿼리: %s

본문:
%s

요약:`

const factCheckPrompt = `너는 꼼꼼한 팩트 검증기이다. 너의 최종 목표는 사용자가 질문한 내용에 대해 사실에 기반하고 명확하며, 반드시 출처 정보를 포함하는 답변을 생성하는 것이다.
아래 '검토 대상 답변'을 '검토 참고 정보'와 비교하여 사실 관계를 확인하고, 필요한 경우 수정하여 최종적으로 정제된 답변을 생성하라.

검토 및 정제 지침:
1.  **[검토 대상 답변]**과 **[검토 참고 정보]** (특히 '[검색된 본문]' 섹션)를 **문장 단위로 비교**하여 사실 관계의 일치 여부를 확인하라.
2.  **불일치/오류 식별:** [검토 대상 답변]에서 [검색된 본문] 내용과 다르거나, 부정확하거나, 사용자의 원래 질문과 관련 없는 정보를 식별하라.
3.  **수정 및 정제:** 식별된 오류를 수정하고, 불필요한 내용은 제거하며, 문맥을 자연스럽게 다듬어라. 모든 내용은 반드시 [검색된 본문] 정보에 근거해야 한다.
4.  **출처 추출 및 확인:** 검토 대상 답변에 포함된 **모든 유효한 URL**들을 반드시 식별하고 추출하라. 이 URL들은 최종 답변의 근거이다. ('https://...' 형식)
5.  **최종 답변 생성:** 수정 및 정제된 답변 본문 뒤에, **반드시 다음 형식으로 추출된 모든 출처 URL 목록을 포함**하여 최종 결과물을 작성하라.
주의 사항:
-URL을 작성할 때, 반드시 현재 수정 및 정제된 답변과 관련이 있는 URL인지 확인하고 해당하는 URL만을 작성하라.
-수정 및 정제된 답변 본문에 URL이 포함되어있지 않다면, URL은 ''을 반환하라.

**출력 형식 (매우 중요):**
ChatBot: [수정 및 정제된 최종 답변 본문 내용...]

출처:
- [추출된 첫 번째 URL]
- [추출된 두 번째 URL]
- ... (추출된 모든 URL 나열)

검토 대상 답변:
%s

[검토 참고 정보]
- Observation: 에이전트가 검색을 통해 얻은 본문
- History: 사용자와의 이전 대화 기록
%s

---
# 최종 출력 (위의 '출력 형식'을 반드시 준수하라):
ChatBot:
`

// agentTaskPrompt is the instruction handed to the reasoning loop. Filled
// with the refined query and the selected tool name.
const agentTaskPrompt = "'%s' 쿼리에 대해 '%s' 도구를 사용하여 관련 정보를 검색하고 그 결과를 말하라."

// agentCorrection is reinjected when the model produces a malformed tool call.
const agentCorrection = "Agent 파싱 오류 발생: 출력 형식 오류. 재시도 시작"
