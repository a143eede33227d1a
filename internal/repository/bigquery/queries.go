package bigquery

import (
	"fmt"
	"strings"

	"docreport/internal/repository"
)

func selectColumns() string {
	return strings.Join(repository.RecordColumns, ",\n  ")
}

func periodQuery(table string) string {
	return fmt.Sprintf(`SELECT
  %s
FROM `+"`%s`"+`
WHERE COMPETENCIA = @competencia`, selectColumns(), table)
}

func pendenciesQuery(table string) string {
	return fmt.Sprintf(`SELECT
  %s
FROM `+"`%s`"+`
WHERE STATUS_GERAL_Regra IN ('Não Conforme', 'Não Enviado')`, selectColumns(), table)
}

// aggregatesQuery groups the five periods ending at @competencia. The conforming sum
// mirrors the scoring rule: two projects count only "Conforme", the rest also count
// "Em Análise".
func aggregatesQuery(table string) string {
	return fmt.Sprintf(`WITH referencia AS (
  SELECT DISTINCT Competencia_Data AS data_ref
  FROM `+"`%[1]s`"+`
  WHERE COMPETENCIA = @competencia
  LIMIT 1
),
ultimas_5 AS (
  SELECT DISTINCT t.COMPETENCIA, t.Competencia_Data
  FROM `+"`%[1]s`"+` AS t
  CROSS JOIN referencia r
  WHERE t.Competencia_Data BETWEEN DATE_SUB(r.data_ref, INTERVAL 4 MONTH) AND r.data_ref
),
base AS (
  SELECT
    PROJETO,
    PRESTADOR,
    CONTRATO,
    COMPETENCIA,
    SUM(
      CASE
        WHEN (PROJETO IN ('Reparação Bacia do Rio Doce', 'Samarco - COA') AND STATUS_GERAL_Regra = 'Conforme')
          OR (PROJETO NOT IN ('Reparação Bacia do Rio Doce', 'Samarco - COA') AND STATUS_GERAL_Regra IN ('Conforme', 'Em Análise'))
        THEN SAFE_CAST(RELEVANCIA AS FLOAT64)
        ELSE 0
      END
    ) AS relevancia_conforme,
    COUNTIF(STATUS_GERAL_Regra = 'Não Conforme') AS total_pendencias,
    COUNTIF(STATUS_GERAL_Regra = 'Não Conforme' AND SAFE_CAST(CRITICO AS INT64) = 1) AS total_criticos
  FROM `+"`%[1]s`"+`
  WHERE COMPETENCIA IN (SELECT COMPETENCIA FROM ultimas_5)
  GROUP BY PROJETO, PRESTADOR, CONTRATO, COMPETENCIA
)
SELECT
  PROJETO,
  PRESTADOR,
  CONTRATO,
  COMPETENCIA,
  total_pendencias,
  total_criticos,
  relevancia_conforme AS perc_atingido
FROM base
ORDER BY COMPETENCIA`, table)
}
