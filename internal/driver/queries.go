package driver

const (
	SaveContactQuery = `
		MERGE (c:Contact {uuid: $uuid})
		SET c.name = $name,
			c.email = $email,
			c.phone = $phone,
			c.company_uuid = $company_uuid,
			c.role = $role,
			c.contact_type = $contact_type,
			c.avatar_url = $avatar_url,
			c.name_embedding = $name_embedding,
			c.created_at = $created_at,
			c.updated_at = $updated_at
		RETURN c.uuid AS uuid
	`

	// ListContactsQuery returns the complete, unpaginated collection. The
	// duplicate detector needs full visibility to find cross-page duplicates.
	ListContactsQuery = `
		MATCH (c:Contact)
		RETURN c.uuid AS uuid, c.name AS name, c.email AS email, c.phone AS phone,
			c.company_uuid AS company_uuid, c.role AS role, c.contact_type AS contact_type,
			c.avatar_url AS avatar_url
		ORDER BY c.created_at
	`

	GetContactQuery = `
		MATCH (c:Contact {uuid: $uuid})
		RETURN c.uuid AS uuid, c.name AS name, c.email AS email, c.phone AS phone,
			c.company_uuid AS company_uuid, c.role AS role, c.contact_type AS contact_type,
			c.avatar_url AS avatar_url
	`

	DeleteContactQuery = `
		MATCH (c:Contact {uuid: $uuid})
		DETACH DELETE c
		RETURN count(c) AS deleted
	`

	LinkContactToCompanyQuery = `
		MATCH (c:Contact {uuid: $contact_uuid})
		MATCH (co:Company {uuid: $company_uuid})
		MERGE (c)-[r:WORKS_AT]->(co)
		SET r.created_at = $created_at
		RETURN c.uuid AS uuid
	`

	SaveCompanyQuery = `
		MERGE (co:Company {uuid: $uuid})
		SET co.name = $name,
			co.email = $email,
			co.phone = $phone,
			co.address = $address,
			co.city = $city,
			co.industry = $industry,
			co.tax_id = $tax_id,
			co.bet_specialties = $bet_specialties,
			co.name_embedding = $name_embedding,
			co.created_at = $created_at,
			co.updated_at = $updated_at
		RETURN co.uuid AS uuid
	`

	ListCompaniesQuery = `
		MATCH (co:Company)
		RETURN co.uuid AS uuid, co.name AS name, co.email AS email, co.phone AS phone,
			co.address AS address, co.city AS city, co.industry AS industry,
			co.tax_id AS tax_id, co.bet_specialties AS bet_specialties
		ORDER BY co.created_at
	`

	GetCompanyQuery = `
		MATCH (co:Company {uuid: $uuid})
		RETURN co.uuid AS uuid, co.name AS name, co.email AS email, co.phone AS phone,
			co.address AS address, co.city AS city, co.industry AS industry,
			co.tax_id AS tax_id, co.bet_specialties AS bet_specialties
	`

	DeleteCompanyQuery = `
		MATCH (co:Company {uuid: $uuid})
		DETACH DELETE co
		RETURN count(co) AS deleted
	`

	SaveLeadQuery = `
		MERGE (l:Lead {uuid: $uuid})
		SET l.title = $title,
			l.contact_uuid = $contact_uuid,
			l.company_uuid = $company_uuid,
			l.amount = $amount,
			l.stage = $stage,
			l.notes = $notes,
			l.created_at = $created_at,
			l.updated_at = $updated_at
		RETURN l.uuid AS uuid
	`

	ListLeadsQuery = `
		MATCH (l:Lead)
		RETURN l.uuid AS uuid, l.title AS title, l.contact_uuid AS contact_uuid,
			l.company_uuid AS company_uuid, l.amount AS amount, l.stage AS stage,
			l.notes AS notes
		ORDER BY l.created_at
	`

	GetLeadQuery = `
		MATCH (l:Lead {uuid: $uuid})
		RETURN l.uuid AS uuid, l.title AS title, l.contact_uuid AS contact_uuid,
			l.company_uuid AS company_uuid, l.amount AS amount, l.stage AS stage,
			l.notes AS notes
	`

	DeleteLeadQuery = `
		MATCH (l:Lead {uuid: $uuid})
		DETACH DELETE l
		RETURN count(l) AS deleted
	`

	SetLeadStageQuery = `
		MATCH (l:Lead {uuid: $uuid})
		SET l.stage = $stage,
			l.updated_at = $updated_at
		RETURN l.uuid AS uuid
	`

	LinkLeadToContactQuery = `
		MATCH (l:Lead {uuid: $lead_uuid})
		MATCH (c:Contact {uuid: $contact_uuid})
		MERGE (l)-[r:CONCERNS]->(c)
		SET r.created_at = $created_at
		RETURN l.uuid AS uuid
	`

	SearchContactsQuery = `
		MATCH (c:Contact)
		WHERE toLower(c.name) CONTAINS toLower($query)
			OR toLower(c.email) CONTAINS toLower($query)
		RETURN c.uuid AS uuid, c.name AS name, c.email AS email, c.phone AS phone,
			c.company_uuid AS company_uuid, c.role AS role, c.contact_type AS contact_type,
			c.avatar_url AS avatar_url
		LIMIT 20
	`
)
