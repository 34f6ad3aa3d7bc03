package graph

const (
	searchEntitiesQuery = `
		MATCH (n)
		WHERE toLower(n.name) CONTAINS toLower($search_term)
		   OR toLower(n.id) CONTAINS toLower($search_term)
		OPTIONAL MATCH (n)-[r]->(m)
		RETURN n.name AS source, n.id AS source_id,
		       type(r) AS relation, r.relationship AS rel_detail,
		       m.name AS target, m.id AS target_id
		LIMIT 25
	`

	getEntityQuery = `
		MATCH (n)
		WHERE toLower(n.name) = toLower($entity_name)
		   OR toLower(n.id) = toLower($entity_name)
		OPTIONAL MATCH (n)-[r_out]->(target)
		OPTIONAL MATCH (source)-[r_in]->(n)
		RETURN n.name AS entity,
		       collect(DISTINCT {rel: type(r_out), detail: r_out.relationship, other: target.name}) AS outgoing,
		       collect(DISTINCT {rel: type(r_in), detail: r_in.relationship, other: source.name}) AS incoming
	`
)
