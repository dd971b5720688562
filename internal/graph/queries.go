package graph

const (
	// livenessQuery is the trivial probe used by Connect and HealthCheck.
	livenessQuery = "RETURN 1"

	// upsertNodeQuery is a template: the label cannot be bound as a
	// parameter in Cypher, so it is substituted into the text after
	// passing the allowlist check in Upsert.
	upsertNodeQuery = `
		MERGE (n:%s {name: $name})
		SET n += $props
		RETURN n
	`

	// LinkReferenceQuery connects an analyzed file node to a copybook it
	// references. The file node is matched by name alone since its label
	// is chosen per run from the oracle's classification.
	LinkReferenceQuery = `
		MATCH (f {name: $file})
		MATCH (c:Copybook {name: $copybook})
		MERGE (f)-[r:REFERENCES]->(c)
		SET r.run_id = $run_id
		RETURN c.name AS name
	`
)
