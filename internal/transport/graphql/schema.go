package graphql

// Schema is the GraphQL schema served at /graphql.
var Schema = `
	schema {
		query: Query
		mutation: Mutation
	}

	type Query {
		thoughts(username: String): [Thought!]!
		thought(id: ID!): Thought
		users: [User!]!
		user(username: String!): User
		me: User!
	}

	type Mutation {
		addUser(username: String!, email: String!, password: String!): Auth!
		addThought(thoughtText: String!): Thought!
		addReaction(thoughtId: ID!, reactionBody: String!): Thought!
		addFriend(friendId: ID!): User!
		login(email: String!, password: String!): Auth!
	}

	type User {
		id: ID!
		username: String!
		email: String!
		createdAt: String!
		friendCount: Int!
		friends: [User!]!
		thoughts: [Thought!]!
	}

	type Thought {
		id: ID!
		thoughtText: String!
		username: String!
		createdAt: String!
		reactionCount: Int!
		reactions: [Reaction!]!
	}

	type Reaction {
		id: ID!
		reactionBody: String!
		username: String!
		createdAt: String!
	}

	type Auth {
		token: String!
		user: User!
	}
`
